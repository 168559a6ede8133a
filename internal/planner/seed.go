package planner

// SeedDemo loads a small starter data set: a stocked pantry, a few meal
// templates and one planned dinner. Applied through the Board it is an
// undoable command like any other.
func (s *State) SeedDemo() {
	seedCategory := func(c Category) *Category { return &c }
	spc := func(v float64) *float64 { return &v }

	s.MergeOrCreateIngredient(IngredientInput{
		Name: "Chicken Breast", Count: 4, Category: seedCategory(CategoryProtein),
		Nutrition: &Nutrition{Calories: 165, Protein: 31, Fat: 3.6},
	})
	s.MergeOrCreateIngredient(IngredientInput{
		Name: "Eggs", Count: 1, Category: seedCategory(CategoryProtein),
		ServingsPerCount: spc(12),
		Nutrition:        &Nutrition{Calories: 72, Protein: 6.3, Fat: 4.8},
	})
	s.MergeOrCreateIngredient(IngredientInput{
		Name: "Rice", Count: 8, Category: seedCategory(CategoryGrain),
		Nutrition: &Nutrition{Calories: 205, Carbs: 45, Protein: 4.3},
	})
	s.MergeOrCreateIngredient(IngredientInput{
		Name: "Broccoli", Count: 3, Category: seedCategory(CategoryProduce),
		Nutrition: &Nutrition{Calories: 55, Carbs: 11, Protein: 3.7},
	})
	s.MergeOrCreateIngredient(IngredientInput{
		Name: "Milk", Count: 2, Category: seedCategory(CategoryDairy),
		ServingsPerCount: spc(8),
	})

	dinnerID := s.AddMeal(MealInput{
		Name:            "Chicken & Rice Bowl",
		DefaultServings: 2,
		Ingredients: []MealIngredient{
			{Name: "Chicken Breast", Qty: 2, Category: CategoryProtein},
			{Name: "Rice", Qty: 2, Category: CategoryGrain},
			{Name: "Broccoli", Qty: 1, Category: CategoryProduce},
		},
	})
	s.AddMeal(MealInput{
		Name:            "Scrambled Eggs",
		DefaultServings: 2,
		Ingredients: []MealIngredient{
			{Name: "Eggs", Qty: 4, Category: CategoryProtein},
			{Name: "Milk", Qty: 0.5, Category: CategoryDairy},
		},
	})
	s.ToggleMealPinned(dinnerID)

	s.DropMeal(SlotAddress{MealType: Dinner, Day: 0, TargetType: TargetFamily}, dinnerID)
}

package planner

// DayNutrition is the nutrition total for one profile on one day, assuming
// one serving eaten per planned slot.
type DayNutrition struct {
	Day      int     `json:"day"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// slotPerServing derives the per-serving nutrition of a slot: the template's
// calories-per-serving when the slot came from a meal that declares one,
// otherwise the sum of resolved ingredient nutrition across the slot's refs
// divided by its servings.
func (s *State) slotPerServing(slot *SlotEntry) Nutrition {
	if slot.MealID != "" {
		if meal := s.MealByID(slot.MealID); meal != nil && meal.CaloriesPerServing > 0 {
			return Nutrition{Calories: meal.CaloriesPerServing}
		}
	}
	servings := float64(slot.Servings)
	if servings < 1 {
		servings = 1
	}
	var total Nutrition
	for _, ref := range slot.Ingredients {
		ing := s.resolveRef(ref)
		if ing == nil || ing.Nutrition == nil {
			continue
		}
		total.Calories += ing.Nutrition.Calories * ref.Qty
		total.Protein += ing.Nutrition.Protein * ref.Qty
		total.Carbs += ing.Nutrition.Carbs * ref.Qty
		total.Fat += ing.Nutrition.Fat * ref.Qty
	}
	total.Calories = round2(total.Calories / servings)
	total.Protein = round2(total.Protein / servings)
	total.Carbs = round2(total.Carbs / servings)
	total.Fat = round2(total.Fat / servings)
	return total
}

// ProfileWeekNutrition totals each day of the current week for one profile:
// the profile's own slots plus one serving of every family slot.
func (s *State) ProfileWeekNutrition(profileID string) [7]DayNutrition {
	var out [7]DayNutrition
	plan := s.CurrentPlan()
	for day := 0; day < 7; day++ {
		out[day].Day = day
		for _, mt := range MealTypes {
			row, ok := plan.Cells[mt]
			if !ok || row[day] == nil {
				continue
			}
			cell := row[day]
			for _, slot := range []*SlotEntry{cell.Family, cell.Profiles[profileID]} {
				if slot == nil {
					continue
				}
				per := s.slotPerServing(slot)
				out[day].Calories = round2(out[day].Calories + per.Calories)
				out[day].Protein = round2(out[day].Protein + per.Protein)
				out[day].Carbs = round2(out[day].Carbs + per.Carbs)
				out[day].Fat = round2(out[day].Fat + per.Fat)
			}
		}
	}
	return out
}

package planner

import "github.com/google/uuid"

// MealInput carries the fields for creating or editing a meal template.
type MealInput struct {
	Name               string
	Ingredients        []MealIngredient
	DefaultServings    int
	CaloriesPerServing float64
}

// AddMeal creates a meal template and returns its id. Servings default to 1
// and ingredient quantities are floored at 0.01.
func (s *State) AddMeal(in MealInput) string {
	m := Meal{
		ID:                 uuid.NewString(),
		Name:               in.Name,
		Ingredients:        sanitizeMealLines(in.Ingredients),
		DefaultServings:    in.DefaultServings,
		CaloriesPerServing: in.CaloriesPerServing,
	}
	if m.DefaultServings < 1 {
		m.DefaultServings = 1
	}
	s.Meals = append(s.Meals, m)
	return m.ID
}

// UpdateMeal replaces the editable fields of a template. Slots that already
// hold a copy of the meal are unaffected. Unknown ids are a no-op.
func (s *State) UpdateMeal(id string, in MealInput) {
	m := s.MealByID(id)
	if m == nil {
		return
	}
	m.Name = in.Name
	m.Ingredients = sanitizeMealLines(in.Ingredients)
	m.DefaultServings = in.DefaultServings
	if m.DefaultServings < 1 {
		m.DefaultServings = 1
	}
	m.CaloriesPerServing = in.CaloriesPerServing
}

// DeleteMeal removes a template and drops it from the pinned order. Planned
// slots keep their copied ingredient lines.
func (s *State) DeleteMeal(id string) {
	for i := range s.Meals {
		if s.Meals[i].ID == id {
			s.Meals = append(s.Meals[:i], s.Meals[i+1:]...)
			break
		}
	}
	for i, pinned := range s.PinnedMealIDs {
		if pinned == id {
			s.PinnedMealIDs = append(s.PinnedMealIDs[:i], s.PinnedMealIDs[i+1:]...)
			break
		}
	}
}

// ToggleMealPinned flips the pinned flag and keeps PinnedMealIDs in sync:
// newly pinned meals go to the end of the order, unpinned ones leave it.
func (s *State) ToggleMealPinned(id string) {
	m := s.MealByID(id)
	if m == nil {
		return
	}
	m.Pinned = !m.Pinned
	if m.Pinned {
		s.PinnedMealIDs = append(s.PinnedMealIDs, id)
		return
	}
	for i, pinned := range s.PinnedMealIDs {
		if pinned == id {
			s.PinnedMealIDs = append(s.PinnedMealIDs[:i], s.PinnedMealIDs[i+1:]...)
			return
		}
	}
}

func sanitizeMealLines(lines []MealIngredient) []MealIngredient {
	out := make([]MealIngredient, 0, len(lines))
	for _, line := range lines {
		if line.Name == "" {
			continue
		}
		if line.Qty < minQty {
			line.Qty = minQty
		}
		if line.Category == "" {
			line.Category = CategoryOther
		}
		out = append(out, line)
	}
	return out
}

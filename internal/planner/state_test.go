package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"wednesday", time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC), "2026-03-02"},
		{"monday stays", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "2026-03-02"},
		{"sunday belongs to the preceding monday", time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC), "2026-03-02"},
		{"year boundary", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2025-12-29"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekKey(WeekStart(tc.in)))
		})
	}
}

func TestEnsurePlan(t *testing.T) {
	s := newTestState(t)
	require.Len(t, s.WeekPlans, 1, "new state starts with the current week")

	p1 := s.EnsurePlan(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
	p2 := s.EnsurePlan(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.Same(t, p1, p2, "any day of the same week resolves to one plan")
	assert.Len(t, s.WeekPlans, 2)
}

func TestShiftWeek(t *testing.T) {
	s := newTestState(t)
	start := s.CurrentWeekStart

	s.ShiftWeek(1)
	assert.Equal(t, start.AddDate(0, 0, 7), s.CurrentWeekStart)
	_, ok := s.WeekPlans[WeekKey(s.CurrentWeekStart)]
	assert.True(t, ok, "shift must create the target week's plan")

	s.ShiftWeek(-2)
	assert.Equal(t, start.AddDate(0, 0, -7), s.CurrentWeekStart)
}

func TestCloneIsDeep(t *testing.T) {
	s := newTestState(t)
	id := addStock(s, "Chicken", 4, 1)
	exp := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	s.UpdateIngredient(id, IngredientPatch{Expiration: &exp})
	mealID := s.AddMeal(MealInput{
		Name:            "Roast",
		DefaultServings: 2,
		Ingredients:     []MealIngredient{{Name: "Chicken", Qty: 2}},
	})
	s.DropMeal(familySlot(Dinner, 0), mealID)

	clone := s.Clone()

	// Mutate the clone everywhere and verify the original is untouched.
	clone.Ingredients[0].Count = 99
	*clone.Ingredients[0].Expiration = exp.AddDate(1, 0, 0)
	clone.Meals[0].Ingredients[0].Qty = 99
	clone.Profiles[0].Name = "Changed"
	GetSlot(clone.CurrentPlan(), familySlot(Dinner, 0)).Servings = 99

	assert.Equal(t, 2.0, stockOf(t, s, "Chicken"))
	assert.Equal(t, exp, *s.Ingredients[0].Expiration)
	assert.Equal(t, 2.0, s.Meals[0].Ingredients[0].Qty)
	assert.NotEqual(t, "Changed", s.Profiles[0].Name)
	assert.Equal(t, 2, GetSlot(s.CurrentPlan(), familySlot(Dinner, 0)).Servings)
}

func TestProfiles(t *testing.T) {
	t.Run("new state always has one profile", func(t *testing.T) {
		s := newTestState(t)
		require.Len(t, s.Profiles, 1)
	})

	t.Run("deleting the last profile is refused", func(t *testing.T) {
		s := newTestState(t)
		err := s.DeleteProfile(s.Profiles[0].ID)
		assert.ErrorIs(t, err, ErrLastProfile)
		assert.Len(t, s.Profiles, 1)
	})

	t.Run("deleting an unknown profile is a no-op", func(t *testing.T) {
		s := newTestState(t)
		require.NoError(t, s.DeleteProfile("ghost"))
		assert.Len(t, s.Profiles, 1)
	})

	t.Run("delete removes the profile's slots and collapses cells", func(t *testing.T) {
		s := newTestState(t)
		kidID := s.AddProfile("Kid", "#ff9900")
		addr := SlotAddress{MealType: Lunch, Day: 1, TargetType: TargetProfile, ProfileID: kidID}
		SetSlot(s.CurrentPlan(), addr, &SlotEntry{MealName: "Sandwich", Servings: 1})

		require.NoError(t, s.DeleteProfile(kidID))

		assert.Nil(t, s.ProfileByID(kidID))
		assert.Nil(t, s.CurrentPlan().Cells[Lunch][1], "cell left empty must collapse")
	})

	t.Run("update goals", func(t *testing.T) {
		s := newTestState(t)
		id := s.Profiles[0].ID
		s.UpdateProfile(id, "Ana", "#00cc88", &NutritionGoals{CaloriesEnabled: true, Calories: 2000})
		p := s.ProfileByID(id)
		assert.Equal(t, "Ana", p.Name)
		require.NotNil(t, p.Goals)
		assert.Equal(t, 2000.0, p.Goals.Calories)
	})
}

func TestMealTemplates(t *testing.T) {
	s := newTestState(t)

	id := s.AddMeal(MealInput{Name: "Soup", Ingredients: []MealIngredient{
		{Name: "Carrot", Qty: 2},
		{Name: "", Qty: 1},          // dropped
		{Name: "Onion", Qty: 0.001}, // floored
	}})

	meal := s.MealByID(id)
	require.NotNil(t, meal)
	assert.Equal(t, 1, meal.DefaultServings, "servings default to 1")
	require.Len(t, meal.Ingredients, 2)
	assert.Equal(t, 0.01, meal.Ingredients[1].Qty)

	t.Run("pin order", func(t *testing.T) {
		other := s.AddMeal(MealInput{Name: "Stew", DefaultServings: 2})
		s.ToggleMealPinned(id)
		s.ToggleMealPinned(other)
		assert.Equal(t, []string{id, other}, s.PinnedMealIDs)

		s.ToggleMealPinned(id)
		assert.Equal(t, []string{other}, s.PinnedMealIDs)

		s.DeleteMeal(other)
		assert.Empty(t, s.PinnedMealIDs)
		assert.Nil(t, s.MealByID(other))
	})

	t.Run("placed slots keep their copies after template edits", func(t *testing.T) {
		addStock(s, "Carrot", 5, 1)
		s.DropMeal(familySlot(Dinner, 4), id)
		s.UpdateMeal(id, MealInput{Name: "Big Soup", DefaultServings: 3})

		slot := GetSlot(s.CurrentPlan(), familySlot(Dinner, 4))
		require.NotNil(t, slot)
		assert.Equal(t, "Soup", slot.MealName, "slot holds a copy, not a live reference")
	})
}

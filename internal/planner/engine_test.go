package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)) // a Wednesday
}

func stockOf(t *testing.T, s *State, name string) float64 {
	t.Helper()
	ing := s.FindIngredientByName(name)
	require.NotNil(t, ing, "ingredient %q not in ledger", name)
	return ing.Count
}

func addStock(s *State, name string, count, servingsPerCount float64) string {
	return s.MergeOrCreateIngredient(IngredientInput{
		Name:             name,
		Count:            count,
		ServingsPerCount: &servingsPerCount,
	})
}

func familySlot(mealType MealType, day int) SlotAddress {
	return SlotAddress{MealType: mealType, Day: day, TargetType: TargetFamily}
}

func TestDropIngredient(t *testing.T) {
	t.Run("consume and seed servings", func(t *testing.T) {
		s := newTestState(t)
		id := addStock(s, "Chicken", 4, 1)

		addr := familySlot(Dinner, 0)
		s.DropIngredient(addr, id)

		assert.Equal(t, 3.0, stockOf(t, s, "Chicken"))
		slot := GetSlot(s.CurrentPlan(), addr)
		require.NotNil(t, slot)
		require.Len(t, slot.Ingredients, 1)
		assert.Equal(t, 1.0, slot.Ingredients[0].Qty)
		assert.Equal(t, 1, slot.Servings)
	})

	t.Run("servings seeded from conversion factor", func(t *testing.T) {
		s := newTestState(t)
		id := addStock(s, "Eggs", 2, 12)

		addr := familySlot(Breakfast, 1)
		s.DropIngredient(addr, id)

		slot := GetSlot(s.CurrentPlan(), addr)
		require.NotNil(t, slot)
		assert.Equal(t, 12, slot.Servings)
		// One serving unit out of a dozen-per-count stock.
		assert.InDelta(t, 2-1.0/12, stockOf(t, s, "Eggs"), 0.01)
	})

	t.Run("second drop merges the ref", func(t *testing.T) {
		s := newTestState(t)
		id := addStock(s, "Rice", 5, 1)

		addr := familySlot(Lunch, 2)
		s.DropIngredient(addr, id)
		s.DropIngredient(addr, id)

		slot := GetSlot(s.CurrentPlan(), addr)
		require.Len(t, slot.Ingredients, 1)
		assert.Equal(t, 2.0, slot.Ingredients[0].Qty)
		assert.Equal(t, 3.0, stockOf(t, s, "Rice"))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "Rice", 5, 1)

		s.DropIngredient(familySlot(Lunch, 2), "missing")

		assert.Nil(t, GetSlot(s.CurrentPlan(), familySlot(Lunch, 2)))
		assert.Equal(t, 5.0, stockOf(t, s, "Rice"))
	})

	t.Run("stock clamps at zero", func(t *testing.T) {
		s := newTestState(t)
		id := addStock(s, "Butter", 0.5, 1)

		addr := familySlot(Dinner, 3)
		s.DropIngredient(addr, id)
		s.DropIngredient(addr, id)

		assert.Equal(t, 0.0, stockOf(t, s, "Butter"))
		assert.Equal(t, 2.0, GetSlot(s.CurrentPlan(), addr).Ingredients[0].Qty)
	})
}

func TestConservation(t *testing.T) {
	// Dropping consumes stock and restocking puts it back exactly.
	s := newTestState(t)
	id := addStock(s, "chicken", 4, 1)

	addr := familySlot(Dinner, 0)
	s.DropIngredient(addr, id)
	assert.Equal(t, 3.0, stockOf(t, s, "chicken"))
	slot := GetSlot(s.CurrentPlan(), addr)
	require.NotNil(t, slot)
	require.Len(t, slot.Ingredients, 1)
	assert.Equal(t, 1.0, slot.Ingredients[0].Qty)

	s.RemoveToInventory(addr)
	assert.Equal(t, 4.0, stockOf(t, s, "chicken"))
	assert.Nil(t, GetSlot(s.CurrentPlan(), addr))
}

func TestConservationWithFractionalConversion(t *testing.T) {
	s := newTestState(t)
	id := addStock(s, "Eggs", 3, 12)

	addr := familySlot(Breakfast, 4)
	s.DropIngredient(addr, id)
	s.RemoveToInventory(addr)

	assert.InDelta(t, 3.0, stockOf(t, s, "Eggs"), 0.01)
	assert.Nil(t, GetSlot(s.CurrentPlan(), addr))
}

func TestDropMeal(t *testing.T) {
	t.Run("consumes matched lines, unmatched stay unbound", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "Chicken Breast", 4, 1)
		addStock(s, "Rice", 6, 1)
		mealID := s.AddMeal(MealInput{
			Name:            "Chicken Bowl",
			DefaultServings: 2,
			Ingredients: []MealIngredient{
				{Name: "chicken-breast", Qty: 2, Category: CategoryProtein}, // canonical match
				{Name: "Rice", Qty: 2, Category: CategoryGrain},
				{Name: "Saffron", Qty: 0.1, Category: CategoryPantry}, // not stocked
			},
		})

		addr := familySlot(Dinner, 2)
		s.DropMeal(addr, mealID)

		assert.Equal(t, 2.0, stockOf(t, s, "Chicken Breast"))
		assert.Equal(t, 4.0, stockOf(t, s, "Rice"))
		slot := GetSlot(s.CurrentPlan(), addr)
		require.NotNil(t, slot)
		assert.Equal(t, mealID, slot.MealID)
		assert.Equal(t, 2, slot.Servings)
		require.Len(t, slot.Ingredients, 3)
		assert.Empty(t, slot.Ingredients[2].IngredientID, "unmatched line must stay unbound")
	})

	t.Run("overwriting a slot restores the old contents first", func(t *testing.T) {
		s := newTestState(t)
		chickenID := addStock(s, "Chicken", 4, 1)
		addStock(s, "Pasta", 5, 1)
		mealID := s.AddMeal(MealInput{
			Name:            "Pasta Night",
			DefaultServings: 1,
			Ingredients:     []MealIngredient{{Name: "Pasta", Qty: 1}},
		})

		addr := familySlot(Dinner, 0)
		s.DropIngredient(addr, chickenID)
		require.Equal(t, 3.0, stockOf(t, s, "Chicken"))

		s.DropMeal(addr, mealID)

		// Old chicken refunded, pasta consumed at the slot's existing servings.
		assert.Equal(t, 4.0, stockOf(t, s, "Chicken"))
		assert.Equal(t, 4.0, stockOf(t, s, "Pasta"))
	})

	t.Run("existing servings rescale the template", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "Rice", 10, 1)
		mealID := s.AddMeal(MealInput{
			Name:            "Rice Bowl",
			DefaultServings: 2,
			Ingredients:     []MealIngredient{{Name: "Rice", Qty: 2}},
		})

		addr := familySlot(Lunch, 1)
		SetSlot(s.CurrentPlan(), addr, &SlotEntry{Servings: 4})
		s.DropMeal(addr, mealID)

		slot := GetSlot(s.CurrentPlan(), addr)
		assert.Equal(t, 4, slot.Servings)
		assert.Equal(t, 4.0, slot.Ingredients[0].Qty)
		assert.Equal(t, 6.0, stockOf(t, s, "Rice"))
	})

	t.Run("unknown meal id is a no-op", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "Rice", 10, 1)
		s.DropMeal(familySlot(Lunch, 1), "missing")
		assert.Equal(t, 10.0, stockOf(t, s, "Rice"))
		assert.Nil(t, GetSlot(s.CurrentPlan(), familySlot(Lunch, 1)))
	})
}

func TestMoveOrSwap(t *testing.T) {
	t.Run("swap symmetry with zero ledger change", func(t *testing.T) {
		s := newTestState(t)
		chickenID := addStock(s, "Chicken", 4, 1)
		riceID := addStock(s, "Rice", 6, 1)

		a := familySlot(Dinner, 0)
		b := familySlot(Lunch, 3)
		s.DropIngredient(a, chickenID)
		s.DropIngredient(b, riceID)

		beforeA := cloneSlot(GetSlot(s.CurrentPlan(), a))
		beforeB := cloneSlot(GetSlot(s.CurrentPlan(), b))
		chickenBefore := stockOf(t, s, "Chicken")
		riceBefore := stockOf(t, s, "Rice")

		s.MoveOrSwap(a, b)
		s.MoveOrSwap(a, b)

		assert.Equal(t, beforeA, GetSlot(s.CurrentPlan(), a))
		assert.Equal(t, beforeB, GetSlot(s.CurrentPlan(), b))
		assert.Equal(t, chickenBefore, stockOf(t, s, "Chicken"))
		assert.Equal(t, riceBefore, stockOf(t, s, "Rice"))
	})

	t.Run("move into empty slot leaves source empty", func(t *testing.T) {
		s := newTestState(t)
		id := addStock(s, "Chicken", 4, 1)
		a := familySlot(Dinner, 0)
		b := familySlot(Dinner, 1)
		s.DropIngredient(a, id)

		s.MoveOrSwap(a, b)

		assert.Nil(t, GetSlot(s.CurrentPlan(), a))
		require.NotNil(t, GetSlot(s.CurrentPlan(), b))
		assert.Equal(t, 3.0, stockOf(t, s, "Chicken"))
	})

	t.Run("same address is a no-op", func(t *testing.T) {
		s := newTestState(t)
		id := addStock(s, "Chicken", 4, 1)
		a := familySlot(Dinner, 0)
		s.DropIngredient(a, id)
		before := cloneSlot(GetSlot(s.CurrentPlan(), a))

		s.MoveOrSwap(a, a)

		assert.Equal(t, before, GetSlot(s.CurrentPlan(), a))
	})

	t.Run("empty source is a no-op", func(t *testing.T) {
		s := newTestState(t)
		id := addStock(s, "Chicken", 4, 1)
		b := familySlot(Dinner, 1)
		s.DropIngredient(b, id)
		before := cloneSlot(GetSlot(s.CurrentPlan(), b))

		s.MoveOrSwap(familySlot(Dinner, 0), b)

		assert.Equal(t, before, GetSlot(s.CurrentPlan(), b))
	})
}

func TestClearSlot(t *testing.T) {
	s := newTestState(t)
	id := addStock(s, "Chicken", 4, 1)
	addr := familySlot(Dinner, 0)
	s.DropIngredient(addr, id)

	s.ClearSlot(addr)

	// Discard without refund.
	assert.Nil(t, GetSlot(s.CurrentPlan(), addr))
	assert.Equal(t, 3.0, stockOf(t, s, "Chicken"))
}

func TestDuplicateSlot(t *testing.T) {
	s := newTestState(t)
	id := addStock(s, "Chicken", 4, 1)
	a := familySlot(Dinner, 0)
	b := familySlot(Dinner, 1)
	s.DropIngredient(a, id)

	s.DuplicateSlot(a, b)

	// Verbatim copy, no double consumption.
	assert.Equal(t, GetSlot(s.CurrentPlan(), a), GetSlot(s.CurrentPlan(), b))
	assert.Equal(t, 3.0, stockOf(t, s, "Chicken"))

	// The copy is deep: mutating one must not touch the other.
	GetSlot(s.CurrentPlan(), b).Ingredients[0].Qty = 99
	assert.Equal(t, 1.0, GetSlot(s.CurrentPlan(), a).Ingredients[0].Qty)
}

func TestMakeLeftovers(t *testing.T) {
	t.Run("copies into next day's lunch at the same target", func(t *testing.T) {
		s := newTestState(t)
		profileID := s.Profiles[0].ID
		id := addStock(s, "Chicken", 4, 1)
		addr := SlotAddress{MealType: Dinner, Day: 2, TargetType: TargetProfile, ProfileID: profileID}
		s.DropIngredient(addr, id)
		stockBefore := stockOf(t, s, "Chicken")

		s.MakeLeftovers(addr)

		target := SlotAddress{MealType: Lunch, Day: 3, TargetType: TargetProfile, ProfileID: profileID}
		leftover := GetSlot(s.CurrentPlan(), target)
		require.NotNil(t, leftover)
		assert.True(t, leftover.IsLeftovers)
		assert.Equal(t, stockBefore, stockOf(t, s, "Chicken"), "leftovers share already-consumed stock")
		// Source untouched.
		require.NotNil(t, GetSlot(s.CurrentPlan(), addr))
		assert.False(t, GetSlot(s.CurrentPlan(), addr).IsLeftovers)
	})

	t.Run("day boundary", func(t *testing.T) {
		for day := 0; day <= 6; day++ {
			s := newTestState(t)
			id := addStock(s, "Chicken", 10, 1)
			addr := familySlot(Dinner, day)
			s.DropIngredient(addr, id)

			s.MakeLeftovers(addr)

			target := familySlot(Lunch, (day+1)%7)
			if day >= 6 {
				assert.Nil(t, GetSlot(s.CurrentPlan(), target), "day 6 must not wrap")
			} else {
				assert.NotNil(t, GetSlot(s.CurrentPlan(), target), "day %d", day)
			}
		}
	})

	t.Run("overwrites whatever was at the target", func(t *testing.T) {
		s := newTestState(t)
		chickenID := addStock(s, "Chicken", 4, 1)
		riceID := addStock(s, "Rice", 4, 1)
		src := familySlot(Dinner, 0)
		dst := familySlot(Lunch, 1)
		s.DropIngredient(src, chickenID)
		s.DropIngredient(dst, riceID)

		s.MakeLeftovers(src)

		got := GetSlot(s.CurrentPlan(), dst)
		require.Len(t, got.Ingredients, 1)
		assert.Equal(t, "Chicken", got.Ingredients[0].Name)
		// No refund for the overwritten rice: leftovers never touch the ledger.
		assert.Equal(t, 3.0, stockOf(t, s, "Rice"))
	})
}

func TestSetServings(t *testing.T) {
	t.Run("rescale consumes only the net delta", func(t *testing.T) {
		// servings 2 with qty 4 of rice; doubling to 4 servings must yield
		// qty 8 and cost exactly 4 extra serving units.
		s := newTestState(t)
		addStock(s, "rice", 20, 1)
		addr := familySlot(Dinner, 0)
		ing := s.FindIngredientByName("rice")
		SetSlot(s.CurrentPlan(), addr, &SlotEntry{
			Servings:    2,
			Ingredients: []IngredientRef{{IngredientID: ing.ID, Name: "rice", Qty: 4}},
		})
		s.AdjustIngredientCount(ing.ID, -4) // the slot's existing consumption

		s.SetServings(addr, 4)

		slot := GetSlot(s.CurrentPlan(), addr)
		assert.Equal(t, 4, slot.Servings)
		assert.Equal(t, 8.0, slot.Ingredients[0].Qty)
		assert.Equal(t, 12.0, stockOf(t, s, "rice"))
	})

	t.Run("scaling down restores stock", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "rice", 12, 1)
		addr := familySlot(Dinner, 0)
		ing := s.FindIngredientByName("rice")
		SetSlot(s.CurrentPlan(), addr, &SlotEntry{
			Servings:    4,
			Ingredients: []IngredientRef{{IngredientID: ing.ID, Name: "rice", Qty: 8}},
		})

		s.SetServings(addr, 2)

		assert.Equal(t, 4.0, GetSlot(s.CurrentPlan(), addr).Ingredients[0].Qty)
		assert.Equal(t, 16.0, stockOf(t, s, "rice"))
	})

	t.Run("new servings floored at one", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "rice", 12, 1)
		addr := familySlot(Dinner, 0)
		ing := s.FindIngredientByName("rice")
		SetSlot(s.CurrentPlan(), addr, &SlotEntry{
			Servings:    2,
			Ingredients: []IngredientRef{{IngredientID: ing.ID, Name: "rice", Qty: 4}},
		})

		s.SetServings(addr, 0)

		slot := GetSlot(s.CurrentPlan(), addr)
		assert.Equal(t, 1, slot.Servings)
		assert.Equal(t, 2.0, slot.Ingredients[0].Qty)
	})

	t.Run("repeated rescale does not drift", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "rice", 30, 1)
		addr := familySlot(Dinner, 0)
		ing := s.FindIngredientByName("rice")
		SetSlot(s.CurrentPlan(), addr, &SlotEntry{
			Servings:    2,
			Ingredients: []IngredientRef{{IngredientID: ing.ID, Name: "rice", Qty: 4}},
		})

		s.SetServings(addr, 6)
		s.SetServings(addr, 2)

		assert.Equal(t, 4.0, GetSlot(s.CurrentPlan(), addr).Ingredients[0].Qty)
		assert.InDelta(t, 30.0, stockOf(t, s, "rice"), 0.01)
	})

	t.Run("conversion factor applies to the delta", func(t *testing.T) {
		s := newTestState(t)
		addStock(s, "Eggs", 3, 12)
		addr := familySlot(Breakfast, 0)
		ing := s.FindIngredientByName("Eggs")
		SetSlot(s.CurrentPlan(), addr, &SlotEntry{
			Servings:    2,
			Ingredients: []IngredientRef{{IngredientID: ing.ID, Name: "Eggs", Qty: 2}},
		})

		s.SetServings(addr, 4)

		// 2 extra serving units at 12 servings per count.
		assert.InDelta(t, 3-2.0/12, stockOf(t, s, "Eggs"), 0.01)
	})
}

func TestApplyNetDeltas(t *testing.T) {
	// A key that disappears from the refs entirely must still have its old
	// quantity restored in full, and a key that appears from nowhere is
	// consumed in full.
	s := newTestState(t)
	addStock(s, "rice", 10, 1)
	addStock(s, "beans", 10, 1)
	riceRef := IngredientRef{IngredientID: s.FindIngredientByName("rice").ID, Name: "rice", Qty: 4}
	beansRef := IngredientRef{IngredientID: s.FindIngredientByName("beans").ID, Name: "beans", Qty: 2}

	s.applyNetDeltas(
		map[string]float64{refKey(riceRef): 4},
		map[string]float64{refKey(beansRef): 2},
		map[string]IngredientRef{refKey(riceRef): riceRef, refKey(beansRef): beansRef},
	)

	assert.Equal(t, 14.0, stockOf(t, s, "rice"), "removed key restored in full")
	assert.Equal(t, 8.0, stockOf(t, s, "beans"), "added key consumed in full")
}

func TestSaveSlotAsMeal(t *testing.T) {
	s := newTestState(t)
	id := addStock(s, "Chicken", 4, 1)
	addr := familySlot(Dinner, 0)
	s.DropIngredient(addr, id)
	s.DropIngredient(addr, id)
	stockBefore := stockOf(t, s, "Chicken")

	mealID := s.SaveSlotAsMeal(addr, "Double Chicken")
	require.NotEmpty(t, mealID)

	meal := s.MealByID(mealID)
	require.NotNil(t, meal)
	assert.True(t, meal.Pinned)
	assert.Contains(t, s.PinnedMealIDs, mealID)
	require.Len(t, meal.Ingredients, 1)
	assert.Equal(t, 2.0, meal.Ingredients[0].Qty)

	// Neither the slot nor the ledger moved.
	assert.NotNil(t, GetSlot(s.CurrentPlan(), addr))
	assert.Equal(t, stockBefore, stockOf(t, s, "Chicken"))

	t.Run("empty slot returns nothing", func(t *testing.T) {
		assert.Empty(t, s.SaveSlotAsMeal(familySlot(Snack, 5), "Nothing"))
	})
}

func TestWeakReferenceFallback(t *testing.T) {
	// Deleting an ingredient must not corrupt slots referencing it; restore
	// falls back to name matching once the id no longer resolves.
	s := newTestState(t)
	id := addStock(s, "Chicken", 4, 1)
	addr := familySlot(Dinner, 0)
	s.DropIngredient(addr, id)

	s.DeleteIngredient(id)
	require.Nil(t, s.IngredientByID(id))

	// Re-stocked under a differently-cased name: canonical match.
	addStock(s, "chicken", 2, 1)
	s.RemoveToInventory(addr)

	assert.Equal(t, 3.0, stockOf(t, s, "chicken"))
	assert.Nil(t, GetSlot(s.CurrentPlan(), addr))
}

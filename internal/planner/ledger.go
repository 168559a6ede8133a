package planner

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// minServingsPerCount is the floor for the stock-to-serving conversion
// factor; zero would make consumption arithmetic divide by zero.
const minServingsPerCount = 0.01

// round2 rounds to 2 decimal places. All ledger counts pass through it so
// repeated consume/restore cycles do not accumulate float drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampCount(v float64) float64 {
	if v < 0 {
		return 0
	}
	return round2(v)
}

// IngredientInput carries the caller-supplied fields for MergeOrCreate.
// Pointer fields distinguish "not given" from zero values; only explicitly
// given fields overwrite an existing entry.
type IngredientInput struct {
	Name             string
	Count            float64
	Category         *Category
	ServingsPerCount *float64
	Expiration       *time.Time
	Notes            *string
	Pinned           *bool
	Nutrition        *Nutrition
}

// IngredientPatch carries the optional fields for UpdateIngredient.
type IngredientPatch struct {
	Name             *string
	Category         *Category
	Count            *float64
	ServingsPerCount *float64
	Expiration       *time.Time
	ClearExpiration  bool
	Notes            *string
	Nutrition        *Nutrition
	ClearNutrition   bool
}

// FindIngredientByName returns the ledger entry whose canonical name matches,
// or nil. First-seen casing wins: the stored display name is never rewritten
// by a merge.
func (s *State) FindIngredientByName(name string) *Ingredient {
	key := CanonicalName(name)
	for i := range s.Ingredients {
		if CanonicalName(s.Ingredients[i].Name) == key {
			return &s.Ingredients[i]
		}
	}
	return nil
}

// MergeOrCreateIngredient adds stock to an existing ingredient with the same
// canonical name, or creates a new one. It never produces duplicates for
// names that only differ in casing or punctuation. Returns the id of the
// affected entry.
func (s *State) MergeOrCreateIngredient(in IngredientInput) string {
	if existing := s.FindIngredientByName(in.Name); existing != nil {
		existing.Count = clampCount(existing.Count + in.Count)
		if in.Category != nil {
			existing.Category = *in.Category
		}
		if in.ServingsPerCount != nil {
			existing.ServingsPerCount = math.Max(minServingsPerCount, *in.ServingsPerCount)
		}
		if in.Expiration != nil {
			exp := *in.Expiration
			existing.Expiration = &exp
		}
		if in.Notes != nil {
			existing.Notes = *in.Notes
		}
		if in.Pinned != nil {
			existing.Pinned = *in.Pinned
		}
		if in.Nutrition != nil {
			n := *in.Nutrition
			existing.Nutrition = &n
		}
		return existing.ID
	}

	ing := Ingredient{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Category:         CategoryOther,
		Count:            clampCount(in.Count),
		ServingsPerCount: 1,
		CreatedAt:        time.Now().UTC(),
	}
	if in.Category != nil {
		ing.Category = *in.Category
	}
	if in.ServingsPerCount != nil {
		ing.ServingsPerCount = math.Max(minServingsPerCount, *in.ServingsPerCount)
	}
	if in.Expiration != nil {
		exp := *in.Expiration
		ing.Expiration = &exp
	}
	if in.Notes != nil {
		ing.Notes = *in.Notes
	}
	if in.Pinned != nil {
		ing.Pinned = *in.Pinned
	}
	if in.Nutrition != nil {
		n := *in.Nutrition
		ing.Nutrition = &n
	}
	s.Ingredients = append(s.Ingredients, ing)
	return ing.ID
}

// UpdateIngredient applies a partial patch. Unknown ids are a no-op.
func (s *State) UpdateIngredient(id string, patch IngredientPatch) {
	ing := s.IngredientByID(id)
	if ing == nil {
		return
	}
	if patch.Name != nil {
		ing.Name = *patch.Name
	}
	if patch.Category != nil {
		ing.Category = *patch.Category
	}
	if patch.Count != nil {
		ing.Count = clampCount(*patch.Count)
	}
	if patch.ServingsPerCount != nil {
		ing.ServingsPerCount = math.Max(minServingsPerCount, *patch.ServingsPerCount)
	}
	if patch.ClearExpiration {
		ing.Expiration = nil
	} else if patch.Expiration != nil {
		exp := *patch.Expiration
		ing.Expiration = &exp
	}
	if patch.Notes != nil {
		ing.Notes = *patch.Notes
	}
	if patch.ClearNutrition {
		ing.Nutrition = nil
	} else if patch.Nutrition != nil {
		n := *patch.Nutrition
		ing.Nutrition = &n
	}
}

// AdjustIngredientCount adds delta stock units, clamped at zero. Unknown ids
// are a no-op.
func (s *State) AdjustIngredientCount(id string, delta float64) {
	ing := s.IngredientByID(id)
	if ing == nil {
		return
	}
	ing.Count = clampCount(ing.Count + delta)
}

// DeleteIngredient removes the ledger entry. Grid slots referencing it keep
// their refs; the id simply becomes unresolvable and matching falls back to
// the name.
func (s *State) DeleteIngredient(id string) {
	for i := range s.Ingredients {
		if s.Ingredients[i].ID == id {
			s.Ingredients = append(s.Ingredients[:i], s.Ingredients[i+1:]...)
			return
		}
	}
}

// ToggleIngredientPinned flips the pinned flag. Unknown ids are a no-op.
func (s *State) ToggleIngredientPinned(id string) {
	if ing := s.IngredientByID(id); ing != nil {
		ing.Pinned = !ing.Pinned
	}
}

// ClearInventory empties the ledger.
func (s *State) ClearInventory() {
	s.Ingredients = nil
}

// SetInventorySort records the inventory ordering preference.
func (s *State) SetInventorySort(mode SortMode) {
	switch mode {
	case SortByName, SortByCategory, SortByExpiration, SortByNewest:
		s.InventorySort = mode
	}
}

// SortedIngredients returns the ledger ordered by the current sort mode,
// pinned entries first. The returned slice is freshly allocated; the ledger
// itself keeps insertion order.
func (s *State) SortedIngredients() []Ingredient {
	out := make([]Ingredient, len(s.Ingredients))
	copy(out, s.Ingredients)
	less := func(a, b Ingredient) bool {
		return CanonicalName(a.Name) < CanonicalName(b.Name)
	}
	switch s.InventorySort {
	case SortByCategory:
		less = func(a, b Ingredient) bool {
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return CanonicalName(a.Name) < CanonicalName(b.Name)
		}
	case SortByExpiration:
		less = func(a, b Ingredient) bool {
			switch {
			case a.Expiration == nil && b.Expiration == nil:
				return CanonicalName(a.Name) < CanonicalName(b.Name)
			case a.Expiration == nil:
				return false
			case b.Expiration == nil:
				return true
			}
			return a.Expiration.Before(*b.Expiration)
		}
	case SortByNewest:
		less = func(a, b Ingredient) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return less(out[i], out[j])
	})
	return out
}

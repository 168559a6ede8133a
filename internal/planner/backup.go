package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidBackup marks a backup payload that fails the shape check. The
// import is all-or-nothing: a rejected payload leaves state untouched.
var ErrInvalidBackup = errors.New("invalid backup payload")

// Backup is the persisted/export shape, also used as the JSON backup format.
type Backup struct {
	Ingredients          []Ingredient         `json:"ingredients"`
	Meals                []Meal               `json:"meals"`
	Profiles             []Profile            `json:"profiles"`
	CustomCategories     []Category           `json:"customCategories,omitempty"`
	PinnedMealIDs        []string             `json:"pinnedMealIds"`
	WeekPlans            map[string]*WeekPlan `json:"weekPlans"`
	CurrentWeekStartDate string               `json:"currentWeekStartDate"`
	InventorySort        SortMode             `json:"inventorySort,omitempty"`
}

// ExportBackup serializes the state into the backup format.
func ExportBackup(s *State) ([]byte, error) {
	b := Backup{
		Ingredients:          s.Ingredients,
		Meals:                s.Meals,
		Profiles:             s.Profiles,
		CustomCategories:     s.CustomCategories,
		PinnedMealIDs:        s.PinnedMealIDs,
		WeekPlans:            s.WeekPlans,
		CurrentWeekStartDate: WeekKey(s.CurrentWeekStart),
		InventorySort:        s.InventorySort,
	}
	if b.Ingredients == nil {
		b.Ingredients = []Ingredient{}
	}
	if b.Meals == nil {
		b.Meals = []Meal{}
	}
	if b.PinnedMealIDs == nil {
		b.PinnedMealIDs = []string{}
	}
	return json.MarshalIndent(b, "", "  ")
}

// rawBackup mirrors Backup with raw required fields so a missing key can be
// told apart from an empty value.
type rawBackup struct {
	Ingredients          json.RawMessage            `json:"ingredients"`
	Meals                json.RawMessage            `json:"meals"`
	Profiles             []Profile                  `json:"profiles"`
	CustomCategories     []Category                 `json:"customCategories"`
	PinnedMealIDs        []string                   `json:"pinnedMealIds"`
	WeekPlans            map[string]json.RawMessage `json:"weekPlans"`
	CurrentWeekStartDate string                     `json:"currentWeekStartDate"`
	InventorySort        SortMode                   `json:"inventorySort"`
}

// ImportBackup parses and validates a backup payload, upgrading legacy week
// plan cell shapes to the current CellEntry form. Payloads missing any of
// ingredients, meals, weekPlans or currentWeekStartDate are rejected
// wholesale with ErrInvalidBackup.
func ImportBackup(data []byte) (*State, error) {
	var raw rawBackup
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if raw.Ingredients == nil || raw.Meals == nil || raw.WeekPlans == nil || raw.CurrentWeekStartDate == "" {
		return nil, ErrInvalidBackup
	}
	currentWeek, err := time.ParseInLocation(WeekKeyLayout, raw.CurrentWeekStartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: bad currentWeekStartDate: %v", ErrInvalidBackup, err)
	}

	s := &State{
		Profiles:         raw.Profiles,
		CustomCategories: raw.CustomCategories,
		PinnedMealIDs:    raw.PinnedMealIDs,
		WeekPlans:        map[string]*WeekPlan{},
		CurrentWeekStart: WeekStart(currentWeek),
		InventorySort:    SortByName,
	}
	if err := json.Unmarshal(raw.Ingredients, &s.Ingredients); err != nil {
		return nil, fmt.Errorf("%w: bad ingredients: %v", ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(raw.Meals, &s.Meals); err != nil {
		return nil, fmt.Errorf("%w: bad meals: %v", ErrInvalidBackup, err)
	}
	if raw.InventorySort != "" {
		s.SetInventorySort(raw.InventorySort)
	}
	if len(s.Profiles) == 0 {
		s.Profiles = []Profile{{ID: uuid.NewString(), Name: "Me", Color: "#4f86c6"}}
	}

	for key, rawPlan := range raw.WeekPlans {
		weekStart, err := time.ParseInLocation(WeekKeyLayout, key, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: bad week key %q: %v", ErrInvalidBackup, key, err)
		}
		plan, err := normalizeWeekPlan(rawPlan, WeekStart(weekStart))
		if err != nil {
			return nil, err
		}
		s.WeekPlans[WeekKey(weekStart)] = plan
	}
	s.EnsurePlan(s.CurrentWeekStart)
	return s, nil
}

type rawWeekPlan struct {
	WeekStart time.Time                        `json:"weekStart"`
	Cells     map[MealType][7]*json.RawMessage `json:"cells"`
}

func normalizeWeekPlan(data json.RawMessage, weekStart time.Time) (*WeekPlan, error) {
	var raw rawWeekPlan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: bad week plan: %v", ErrInvalidBackup, err)
	}
	plan := &WeekPlan{
		WeekStart: weekStart,
		Cells:     map[MealType][7]*CellEntry{},
	}
	if !raw.WeekStart.IsZero() {
		plan.WeekStart = WeekStart(raw.WeekStart)
	}
	for mt, row := range raw.Cells {
		if !mt.Valid() {
			continue
		}
		var cells [7]*CellEntry
		for day, rawCell := range row {
			cell, err := normalizeCell(rawCell)
			if err != nil {
				return nil, err
			}
			cells[day] = cell
		}
		plan.Cells[mt] = cells
	}
	return plan, nil
}

// normalizeCell upgrades any historical cell encoding to the current
// CellEntry shape:
//
//   - current: {"family": ..., "profiles": {...}}
//   - legacy flat list: [ingredientRef, ...] (one shared family slot)
//   - legacy bare map: {profileID: slotEntry, ...}
//
// The engine itself only ever sees the canonical shape.
func normalizeCell(raw *json.RawMessage) (*CellEntry, error) {
	if raw == nil || string(*raw) == "null" {
		return nil, nil
	}

	// Legacy flat ingredient list.
	var refs []IngredientRef
	if err := json.Unmarshal(*raw, &refs); err == nil {
		if len(refs) == 0 {
			return nil, nil
		}
		return &CellEntry{Family: &SlotEntry{Ingredients: refs, Servings: 1}}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(*raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: unrecognized cell shape", ErrInvalidBackup)
	}
	_, hasFamily := keys["family"]
	_, hasProfiles := keys["profiles"]
	if hasFamily || hasProfiles || len(keys) == 0 {
		var cell CellEntry
		if err := json.Unmarshal(*raw, &cell); err != nil {
			return nil, fmt.Errorf("%w: bad cell: %v", ErrInvalidBackup, err)
		}
		if cellEmpty(&cell) {
			return nil, nil
		}
		return &cell, nil
	}

	// Legacy bare profile-id to slot map.
	cell := &CellEntry{Profiles: map[string]*SlotEntry{}}
	for profileID, rawSlot := range keys {
		if string(rawSlot) == "null" {
			continue
		}
		var slot SlotEntry
		if err := json.Unmarshal(rawSlot, &slot); err != nil {
			return nil, fmt.Errorf("%w: bad legacy profile slot: %v", ErrInvalidBackup, err)
		}
		if slot.Servings < 1 {
			slot.Servings = 1
		}
		cell.Profiles[profileID] = &slot
	}
	if cellEmpty(cell) {
		return nil, nil
	}
	return cell, nil
}

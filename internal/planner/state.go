package planner

import (
	"time"

	"github.com/google/uuid"
)

// WeekKeyLayout is the map key format for WeekPlans (ISO date of the Monday).
const WeekKeyLayout = "2006-01-02"

// State is the complete in-memory planner state. Commands never mutate a
// committed State; the Board clones it, mutates the clone, and swaps it in.
type State struct {
	Ingredients      []Ingredient         `json:"ingredients"`
	Meals            []Meal               `json:"meals"`
	Profiles         []Profile            `json:"profiles"`
	CustomCategories []Category           `json:"customCategories,omitempty"`
	PinnedMealIDs    []string             `json:"pinnedMealIds"`
	WeekPlans        map[string]*WeekPlan `json:"weekPlans"`
	CurrentWeekStart time.Time            `json:"currentWeekStartDate"`
	InventorySort    SortMode             `json:"inventorySort,omitempty"`
}

// NewState returns an empty state for the week containing now, with the one
// profile that must always exist.
func NewState(now time.Time) *State {
	s := &State{
		WeekPlans:        map[string]*WeekPlan{},
		CurrentWeekStart: WeekStart(now),
		InventorySort:    SortByName,
		Profiles: []Profile{
			{ID: uuid.NewString(), Name: "Me", Color: "#4f86c6"},
		},
	}
	s.EnsurePlan(s.CurrentWeekStart)
	return s
}

// WeekStart returns the Monday of the week containing t, truncated to
// midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekKey formats a week start date as the WeekPlans map key.
func WeekKey(weekStart time.Time) string {
	return weekStart.UTC().Format(WeekKeyLayout)
}

// EnsurePlan returns the plan for the week containing weekStart, creating an
// empty one if the week has never been touched.
func (s *State) EnsurePlan(weekStart time.Time) *WeekPlan {
	ws := WeekStart(weekStart)
	key := WeekKey(ws)
	if p, ok := s.WeekPlans[key]; ok {
		return p
	}
	p := &WeekPlan{
		WeekStart: ws,
		Cells:     map[MealType][7]*CellEntry{},
	}
	s.WeekPlans[key] = p
	return p
}

// CurrentPlan returns the plan for the active week, creating it if needed.
func (s *State) CurrentPlan() *WeekPlan {
	return s.EnsurePlan(s.CurrentWeekStart)
}

// ShiftWeek moves the current-week pointer by whole weeks and makes sure the
// target week's plan exists. Pure navigation: it is not a history event.
func (s *State) ShiftWeek(weeks int) {
	s.CurrentWeekStart = s.CurrentWeekStart.AddDate(0, 0, 7*weeks)
	s.EnsurePlan(s.CurrentWeekStart)
}

// ProfileByID returns the profile with the given id, or nil.
func (s *State) ProfileByID(id string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			return &s.Profiles[i]
		}
	}
	return nil
}

// MealByID returns the meal template with the given id, or nil.
func (s *State) MealByID(id string) *Meal {
	for i := range s.Meals {
		if s.Meals[i].ID == id {
			return &s.Meals[i]
		}
	}
	return nil
}

// IngredientByID returns the ledger entry with the given id, or nil.
func (s *State) IngredientByID(id string) *Ingredient {
	for i := range s.Ingredients {
		if s.Ingredients[i].ID == id {
			return &s.Ingredients[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Every nested slice, map and pointer
// is duplicated so the copy shares no mutable structure with the original.
func (s *State) Clone() *State {
	out := &State{
		Ingredients:      make([]Ingredient, len(s.Ingredients)),
		Meals:            make([]Meal, len(s.Meals)),
		Profiles:         make([]Profile, len(s.Profiles)),
		PinnedMealIDs:    append([]string(nil), s.PinnedMealIDs...),
		CustomCategories: append([]Category(nil), s.CustomCategories...),
		WeekPlans:        make(map[string]*WeekPlan, len(s.WeekPlans)),
		CurrentWeekStart: s.CurrentWeekStart,
		InventorySort:    s.InventorySort,
	}
	for i, ing := range s.Ingredients {
		out.Ingredients[i] = cloneIngredient(ing)
	}
	for i, m := range s.Meals {
		out.Meals[i] = cloneMeal(m)
	}
	for i, p := range s.Profiles {
		out.Profiles[i] = cloneProfile(p)
	}
	for key, plan := range s.WeekPlans {
		out.WeekPlans[key] = clonePlan(plan)
	}
	return out
}

func cloneIngredient(ing Ingredient) Ingredient {
	if ing.Expiration != nil {
		exp := *ing.Expiration
		ing.Expiration = &exp
	}
	if ing.Nutrition != nil {
		n := *ing.Nutrition
		ing.Nutrition = &n
	}
	return ing
}

func cloneMeal(m Meal) Meal {
	m.Ingredients = append([]MealIngredient(nil), m.Ingredients...)
	return m
}

func cloneProfile(p Profile) Profile {
	if p.Goals != nil {
		g := *p.Goals
		p.Goals = &g
	}
	return p
}

func cloneSlot(slot *SlotEntry) *SlotEntry {
	if slot == nil {
		return nil
	}
	out := *slot
	out.Ingredients = append([]IngredientRef(nil), slot.Ingredients...)
	return &out
}

func cloneCell(cell *CellEntry) *CellEntry {
	if cell == nil {
		return nil
	}
	out := &CellEntry{Family: cloneSlot(cell.Family)}
	if cell.Profiles != nil {
		out.Profiles = make(map[string]*SlotEntry, len(cell.Profiles))
		for id, slot := range cell.Profiles {
			out.Profiles[id] = cloneSlot(slot)
		}
	}
	return out
}

func clonePlan(plan *WeekPlan) *WeekPlan {
	out := &WeekPlan{
		WeekStart: plan.WeekStart,
		Cells:     make(map[MealType][7]*CellEntry, len(plan.Cells)),
	}
	for mt, row := range plan.Cells {
		var copied [7]*CellEntry
		for day, cell := range row {
			copied[day] = cloneCell(cell)
		}
		out.Cells[mt] = copied
	}
	return out
}

// Package export builds the serializable week-grid payload consumed by an
// external image renderer. The renderer is a pure consumer: it never calls
// back into the planner.
package export

import (
	"meal-board/internal/planner"
)

// IngredientLine is one name/qty pair inside a rendered slot.
type IngredientLine struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
}

// Slot is the render-ready view of one planned slot.
type Slot struct {
	MealName    string           `json:"mealName,omitempty"`
	Ingredients []IngredientLine `json:"ingredients,omitempty"`
	Servings    int              `json:"servings"`
	IsLeftovers bool             `json:"isLeftovers,omitempty"`
}

// Cell is the render-ready view of one grid position: the family slot plus
// per-profile slots keyed by profile display name.
type Cell struct {
	Family   *Slot            `json:"family,omitempty"`
	Profiles map[string]*Slot `json:"profiles,omitempty"`
}

// WeekPayload is the full serializable grid for one week.
type WeekPayload struct {
	WeekStart string                        `json:"weekStart"`
	Grid      map[planner.MealType][7]*Cell `json:"grid"`
	Profiles  []string                      `json:"profiles"`
}

// BuildWeekPayload flattens the current week into the renderer shape.
func BuildWeekPayload(s *planner.State) WeekPayload {
	plan := s.CurrentPlan()
	payload := WeekPayload{
		WeekStart: planner.WeekKey(plan.WeekStart),
		Grid:      map[planner.MealType][7]*Cell{},
	}
	for _, p := range s.Profiles {
		payload.Profiles = append(payload.Profiles, p.Name)
	}
	for _, mt := range planner.MealTypes {
		row, ok := plan.Cells[mt]
		if !ok {
			continue
		}
		var cells [7]*Cell
		empty := true
		for day, cell := range row {
			if cell == nil {
				continue
			}
			out := &Cell{Family: buildSlot(cell.Family)}
			for profileID, slot := range cell.Profiles {
				if slot == nil {
					continue
				}
				name := profileID
				if p := s.ProfileByID(profileID); p != nil {
					name = p.Name
				}
				if out.Profiles == nil {
					out.Profiles = map[string]*Slot{}
				}
				out.Profiles[name] = buildSlot(slot)
			}
			cells[day] = out
			empty = false
		}
		if !empty {
			payload.Grid[mt] = cells
		}
	}
	return payload
}

func buildSlot(slot *planner.SlotEntry) *Slot {
	if slot == nil {
		return nil
	}
	out := &Slot{
		MealName:    slot.MealName,
		Servings:    slot.Servings,
		IsLeftovers: slot.IsLeftovers,
	}
	for _, ref := range slot.Ingredients {
		out.Ingredients = append(out.Ingredients, IngredientLine{Name: ref.Name, Qty: ref.Qty})
	}
	return out
}

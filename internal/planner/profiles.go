package planner

import (
	"errors"

	"github.com/google/uuid"
)

// ErrLastProfile is returned when deleting the only remaining profile. The
// plan must always have at least one person to split by.
var ErrLastProfile = errors.New("cannot delete the last profile")

// AddProfile creates a profile and returns its id.
func (s *State) AddProfile(name, color string) string {
	p := Profile{ID: uuid.NewString(), Name: name, Color: color}
	s.Profiles = append(s.Profiles, p)
	return p.ID
}

// UpdateProfile replaces a profile's display fields and goals. Unknown ids
// are a no-op.
func (s *State) UpdateProfile(id, name, color string, goals *NutritionGoals) {
	p := s.ProfileByID(id)
	if p == nil {
		return
	}
	p.Name = name
	p.Color = color
	if goals != nil {
		g := *goals
		p.Goals = &g
	} else {
		p.Goals = nil
	}
}

// DeleteProfile removes a profile and every per-profile slot in every week
// that belongs to it, collapsing cells left empty. Deleting the last profile
// is refused.
func (s *State) DeleteProfile(id string) error {
	if s.ProfileByID(id) == nil {
		return nil
	}
	if len(s.Profiles) <= 1 {
		return ErrLastProfile
	}
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			s.Profiles = append(s.Profiles[:i], s.Profiles[i+1:]...)
			break
		}
	}
	for _, plan := range s.WeekPlans {
		for mt, row := range plan.Cells {
			changed := false
			for day, cell := range row {
				if cell == nil || cell.Profiles == nil {
					continue
				}
				if _, ok := cell.Profiles[id]; !ok {
					continue
				}
				delete(cell.Profiles, id)
				if cellEmpty(cell) {
					row[day] = nil
				}
				changed = true
			}
			if changed {
				plan.Cells[mt] = row
			}
		}
	}
	return nil
}

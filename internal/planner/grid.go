package planner

// validAddress reports whether the address points at a reachable slot in this
// state: known meal type, day in range, and an existing profile when the
// target is a profile slot.
func (s *State) validAddress(addr SlotAddress) bool {
	if !addr.MealType.Valid() || addr.Day < 0 || addr.Day > 6 {
		return false
	}
	switch addr.TargetType {
	case TargetFamily:
		return true
	case TargetProfile:
		return addr.ProfileID != "" && s.ProfileByID(addr.ProfileID) != nil
	}
	return false
}

func cellEmpty(cell *CellEntry) bool {
	if cell.Family != nil {
		return false
	}
	for _, slot := range cell.Profiles {
		if slot != nil {
			return false
		}
	}
	return true
}

// GetSlot reads the slot at addr, or nil when the cell or target is empty.
func GetSlot(plan *WeekPlan, addr SlotAddress) *SlotEntry {
	row, ok := plan.Cells[addr.MealType]
	if !ok {
		return nil
	}
	cell := row[addr.Day]
	if cell == nil {
		return nil
	}
	if addr.TargetType == TargetFamily {
		return cell.Family
	}
	return cell.Profiles[addr.ProfileID]
}

// SetSlot writes slot (or nil to remove) at addr. A cell left with no family
// slot and no non-nil profile slot collapses back to nil so an empty grid
// position is always represented the same way.
func SetSlot(plan *WeekPlan, addr SlotAddress, slot *SlotEntry) {
	row := plan.Cells[addr.MealType]
	cell := row[addr.Day]
	if cell == nil {
		if slot == nil {
			return
		}
		cell = &CellEntry{}
	}
	if addr.TargetType == TargetFamily {
		cell.Family = slot
	} else {
		if slot == nil {
			delete(cell.Profiles, addr.ProfileID)
		} else {
			if cell.Profiles == nil {
				cell.Profiles = map[string]*SlotEntry{}
			}
			cell.Profiles[addr.ProfileID] = slot
		}
	}
	if cellEmpty(cell) {
		cell = nil
	}
	row[addr.Day] = cell
	plan.Cells[addr.MealType] = row
}

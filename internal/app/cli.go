package app

import (
	"flag"
	"fmt"

	"meal-board/internal/planner"
)

// addressFlags registers the slot address flags and returns a closure that
// builds the address after parsing.
func addressFlags(fs *flag.FlagSet) func() planner.SlotAddress {
	mealType := fs.String("meal", "dinner", "meal type: breakfast|lunch|dinner|snack")
	day := fs.Int("day", 0, "day of week: 0 (Monday) .. 6 (Sunday)")
	profile := fs.String("profile", "", "profile id for a per-person slot (empty = family)")
	return func() planner.SlotAddress {
		return buildAddress(*mealType, *day, *profile)
	}
}

func targetAddressFlags(fs *flag.FlagSet) func() planner.SlotAddress {
	mealType := fs.String("to-meal", "dinner", "target meal type")
	day := fs.Int("to-day", 0, "target day of week")
	profile := fs.String("to-profile", "", "target profile id (empty = family)")
	return func() planner.SlotAddress {
		return buildAddress(*mealType, *day, *profile)
	}
}

func buildAddress(mealType string, day int, profileID string) planner.SlotAddress {
	addr := planner.SlotAddress{
		MealType:   planner.MealType(mealType),
		Day:        day,
		TargetType: planner.TargetFamily,
	}
	if profileID != "" {
		addr.TargetType = planner.TargetProfile
		addr.ProfileID = profileID
	}
	return addr
}

func printWeek(s *planner.State) {
	plan := s.CurrentPlan()
	fmt.Printf("Week of %s\n", planner.WeekKey(plan.WeekStart))
	dayNames := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for _, mt := range planner.MealTypes {
		row, ok := plan.Cells[mt]
		if !ok {
			continue
		}
		for day, cell := range row {
			if cell == nil {
				continue
			}
			if cell.Family != nil {
				fmt.Printf("  %-9s %s  family:  %s\n", mt, dayNames[day], describeSlot(cell.Family))
			}
			for profileID, slot := range cell.Profiles {
				if slot == nil {
					continue
				}
				name := profileID
				if p := s.ProfileByID(profileID); p != nil {
					name = p.Name
				}
				fmt.Printf("  %-9s %s  %s: %s\n", mt, dayNames[day], name, describeSlot(slot))
			}
		}
	}
}

func describeSlot(slot *planner.SlotEntry) string {
	name := slot.MealName
	if name == "" && len(slot.Ingredients) > 0 {
		name = slot.Ingredients[0].Name
	}
	suffix := ""
	if slot.IsLeftovers {
		suffix = " (leftovers)"
	}
	return fmt.Sprintf("%s x%d%s", name, slot.Servings, suffix)
}

func printInventory(s *planner.State) {
	fmt.Println("Inventory:")
	for _, ing := range s.SortedIngredients() {
		fmt.Printf("  %-20s %6.2f  [%s]\n", ing.Name, ing.Count, ing.Category)
	}
}

// PrintUsage writes the command list to stdout.
func PrintUsage() {
	fmt.Println("Usage: meal-board <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed               Load the demo data set")
	fmt.Println("  show               Print the week grid and inventory")
	fmt.Println("  next-week          Move to the next week")
	fmt.Println("  prev-week          Move to the previous week")
	fmt.Println("  add-ingredient     Add stock to the inventory")
	fmt.Println("  remove-ingredient  Delete an ingredient from the inventory")
	fmt.Println("  adjust-count       Change an ingredient's stock count")
	fmt.Println("  pin-ingredient     Toggle an ingredient's pinned flag")
	fmt.Println("  sort-inventory     Change the inventory sort mode")
	fmt.Println("  clear-inventory    Empty the inventory ledger")
	fmt.Println("  remove-meal        Delete a meal template")
	fmt.Println("  pin-meal           Toggle a meal template's pinned flag")
	fmt.Println("  add-profile        Add a family member profile")
	fmt.Println("  remove-profile     Delete a profile and its slots")
	fmt.Println("  add-category       Add a custom ingredient category")
	fmt.Println("  remove-category    Remove a custom category")
	fmt.Println("  drop-ingredient    Place an ingredient into a slot")
	fmt.Println("  drop-meal          Place a meal template into a slot")
	fmt.Println("  move               Swap the contents of two slots")
	fmt.Println("  duplicate          Copy a slot into another slot")
	fmt.Println("  clear-slot         Discard a slot without refund")
	fmt.Println("  restock            Empty a slot and restore its stock")
	fmt.Println("  leftovers          Copy a slot into next day's lunch")
	fmt.Println("  servings           Rescale a slot's serving count")
	fmt.Println("  save-meal          Save a slot as a pinned meal template")
	fmt.Println("  undo / redo        Step through history")
	fmt.Println("  import-receipt     Reconcile parsed receipt drafts")
	fmt.Println("  export / import    JSON backup round-trip")
	fmt.Println("  backup / restore   Versioned backup archive")
	fmt.Println("  image-payload      Write the week-grid renderer payload")
	fmt.Println("  nutrition          Per-day nutrition totals for a profile")
	fmt.Println("  metrics            Daily command usage report")
	fmt.Println("  metrics-cleanup    Delete old metric records")
}

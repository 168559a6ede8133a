package planner

// ReconcileDrafts merges externally-parsed draft items into the ledger by
// canonical name. Existing entries gain at least one stock unit per draft;
// unknown names become new ingredients holding the draft count as-is (clamped
// at zero) with the default conversion factor. The merge key is the same one
// used by manual adds and plan consumption, so all three agree on ingredient
// identity.
func (s *State) ReconcileDrafts(items []ReceiptDraftItem) {
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		category := item.Category
		if category == "" {
			category = CategoryOther
		}
		if existing := s.FindIngredientByName(item.Name); existing != nil {
			add := item.Count
			if add < 1 {
				add = 1
			}
			existing.Count = clampCount(existing.Count + add)
			continue
		}
		s.MergeOrCreateIngredient(IngredientInput{
			Name:     item.Name,
			Count:    item.Count,
			Category: &category,
		})
	}
}

package planner

// KnownCategories returns the built-in categories followed by the custom
// ones, in a stable order.
func (s *State) KnownCategories() []Category {
	out := append([]Category(nil), BuiltinCategories...)
	return append(out, s.CustomCategories...)
}

// AddCustomCategory registers a custom category. Built-in names and
// duplicates are ignored.
func (s *State) AddCustomCategory(c Category) {
	if c == "" {
		return
	}
	for _, known := range s.KnownCategories() {
		if known == c {
			return
		}
	}
	s.CustomCategories = append(s.CustomCategories, c)
}

// RemoveCustomCategory drops a custom category and reassigns any ingredient
// using it to the default "other" bucket. Built-in categories cannot be
// removed.
func (s *State) RemoveCustomCategory(c Category) {
	for i, custom := range s.CustomCategories {
		if custom != c {
			continue
		}
		s.CustomCategories = append(s.CustomCategories[:i], s.CustomCategories[i+1:]...)
		for j := range s.Ingredients {
			if s.Ingredients[j].Category == c {
				s.Ingredients[j].Category = CategoryOther
			}
		}
		return
	}
}

package planner

import (
	"math"

	"github.com/google/uuid"
)

// minQty is the floor for planned serving-unit quantities after scaling.
const minQty = 0.01

// refKey is the merge/matching key for an ingredient reference: the bound id
// when there is one, the canonical name otherwise. Drop, restore and rescale
// all use the same key so "is this the same ingredient" never disagrees
// between operations.
func refKey(ref IngredientRef) string {
	if ref.IngredientID != "" {
		return ref.IngredientID
	}
	return CanonicalName(ref.Name)
}

// resolveRef finds the ledger entry behind a ref: by id first, falling back
// to canonical-name lookup when the id is missing or no longer resolves.
func (s *State) resolveRef(ref IngredientRef) *Ingredient {
	if ref.IngredientID != "" {
		if ing := s.IngredientByID(ref.IngredientID); ing != nil {
			return ing
		}
	}
	return s.FindIngredientByName(ref.Name)
}

// consumeQty removes qty serving units of the resolved ingredient from the
// ledger, converting through servingsPerCount. Unresolvable refs cost
// nothing.
func (s *State) consumeQty(ref IngredientRef, qty float64) {
	ing := s.resolveRef(ref)
	if ing == nil {
		return
	}
	ing.Count = clampCount(ing.Count - qty/ing.ServingsPerCount)
}

// restoreQty is the inverse of consumeQty.
func (s *State) restoreQty(ref IngredientRef, qty float64) {
	ing := s.resolveRef(ref)
	if ing == nil {
		return
	}
	ing.Count = clampCount(ing.Count + qty/ing.ServingsPerCount)
}

// restoreSlot puts every ref of a slot back into the ledger. Used before a
// slot's contents are replaced so the old plan's consumption is reversed, and
// by RemoveToInventory.
func (s *State) restoreSlot(slot *SlotEntry) {
	if slot == nil {
		return
	}
	for _, ref := range slot.Ingredients {
		s.restoreQty(ref, ref.Qty)
	}
}

// DropIngredient adds one serving unit of the ingredient to the addressed
// slot and consumes the matching stock. An empty slot is seeded with servings
// derived from the ingredient's conversion factor. Unknown ids and bad
// addresses are a no-op.
func (s *State) DropIngredient(addr SlotAddress, ingredientID string) {
	if !s.validAddress(addr) {
		return
	}
	ing := s.IngredientByID(ingredientID)
	if ing == nil {
		return
	}
	plan := s.CurrentPlan()
	slot := GetSlot(plan, addr)
	if slot == nil {
		servings := int(math.Round(ing.ServingsPerCount))
		if servings < 1 {
			servings = 1
		}
		slot = &SlotEntry{Servings: servings}
	}
	ref := IngredientRef{IngredientID: ing.ID, Name: ing.Name, Qty: 1}
	merged := false
	for i := range slot.Ingredients {
		if refKey(slot.Ingredients[i]) == refKey(ref) {
			slot.Ingredients[i].Qty += 1
			merged = true
			break
		}
	}
	if !merged {
		slot.Ingredients = append(slot.Ingredients, ref)
	}
	ing.Count = clampCount(ing.Count - 1/ing.ServingsPerCount)
	SetSlot(plan, addr, slot)
}

// DropMeal places a copy of a meal template into the addressed slot. Whatever
// the slot held before is restored to the ledger first, then the template's
// lines are scaled to the slot's servings, matched against the ledger by
// canonical name and consumed. Lines that match nothing become unbound refs
// with no stock effect.
func (s *State) DropMeal(addr SlotAddress, mealID string) {
	if !s.validAddress(addr) {
		return
	}
	meal := s.MealByID(mealID)
	if meal == nil {
		return
	}
	plan := s.CurrentPlan()
	prev := GetSlot(plan, addr)
	s.restoreSlot(prev)

	servings := meal.DefaultServings
	if prev != nil && prev.Servings > 0 {
		servings = prev.Servings
	}
	if servings < 1 {
		servings = 1
	}
	defaults := meal.DefaultServings
	if defaults < 1 {
		defaults = 1
	}
	scale := float64(servings) / float64(defaults)

	slot := &SlotEntry{
		MealID:   meal.ID,
		MealName: meal.Name,
		Servings: servings,
	}
	for _, line := range meal.Ingredients {
		qty := math.Max(minQty, line.Qty*scale)
		ref := IngredientRef{Name: line.Name, Qty: qty}
		if ing := s.FindIngredientByName(line.Name); ing != nil {
			ref.IngredientID = ing.ID
			ing.Count = clampCount(ing.Count - qty/ing.ServingsPerCount)
		}
		slot.Ingredients = append(slot.Ingredients, ref)
	}
	SetSlot(plan, addr, slot)
}

// MoveOrSwap exchanges the contents of two slots. It only repositions
// planned food, so the ledger never changes; same-address calls and empty
// sources are a no-op.
func (s *State) MoveOrSwap(source, target SlotAddress) {
	if source == target || !s.validAddress(source) || !s.validAddress(target) {
		return
	}
	plan := s.CurrentPlan()
	src := GetSlot(plan, source)
	if src == nil {
		return
	}
	dst := GetSlot(plan, target)
	SetSlot(plan, target, src)
	SetSlot(plan, source, dst)
}

// ClearSlot discards the slot without refunding its stock.
func (s *State) ClearSlot(addr SlotAddress) {
	if !s.validAddress(addr) {
		return
	}
	SetSlot(s.CurrentPlan(), addr, nil)
}

// RemoveToInventory empties the slot and restores every ref's stock to the
// ledger, the exact inverse of consumption. No-op on an already empty slot.
func (s *State) RemoveToInventory(addr SlotAddress) {
	if !s.validAddress(addr) {
		return
	}
	plan := s.CurrentPlan()
	slot := GetSlot(plan, addr)
	if slot == nil {
		return
	}
	s.restoreSlot(slot)
	SetSlot(plan, addr, nil)
}

// DuplicateSlot copies the source slot into the target verbatim, overwriting
// it. The copy does not touch the ledger: no double consumption, and no
// refund for what the target held.
func (s *State) DuplicateSlot(source, target SlotAddress) {
	if source == target || !s.validAddress(source) || !s.validAddress(target) {
		return
	}
	plan := s.CurrentPlan()
	src := GetSlot(plan, source)
	if src == nil {
		return
	}
	SetSlot(plan, target, cloneSlot(src))
}

// MakeLeftovers copies the slot into next day's lunch at the same target,
// flagged as leftovers, overwriting whatever was there. The leftover shares
// the already-consumed stock so the ledger is untouched. Sunday (day 6) has
// no next day inside the week: no-op.
func (s *State) MakeLeftovers(addr SlotAddress) {
	if !s.validAddress(addr) || addr.Day >= 6 {
		return
	}
	plan := s.CurrentPlan()
	slot := GetSlot(plan, addr)
	if slot == nil {
		return
	}
	leftover := cloneSlot(slot)
	leftover.IsLeftovers = true
	target := SlotAddress{
		MealType:   Lunch,
		Day:        addr.Day + 1,
		TargetType: addr.TargetType,
		ProfileID:  addr.ProfileID,
	}
	SetSlot(plan, target, leftover)
}

// SetServings rescales every ref in the slot to the new serving count and
// applies only the net per-ingredient stock delta to the ledger. Deltas are
// computed from old-vs-new quantities per matching key, so rescaling twice
// cannot drift, and a key that disappears from the refs has its old quantity
// restored in full.
func (s *State) SetServings(addr SlotAddress, newServings int) {
	if !s.validAddress(addr) {
		return
	}
	if newServings < 1 {
		newServings = 1
	}
	plan := s.CurrentPlan()
	slot := GetSlot(plan, addr)
	if slot == nil {
		return
	}
	prev := slot.Servings
	if prev < 1 {
		prev = 1
	}
	if newServings == prev {
		return
	}
	scale := float64(newServings) / float64(prev)

	oldQty := map[string]float64{}
	oldRef := map[string]IngredientRef{}
	for _, ref := range slot.Ingredients {
		oldQty[refKey(ref)] += ref.Qty
		oldRef[refKey(ref)] = ref
	}

	for i := range slot.Ingredients {
		slot.Ingredients[i].Qty = math.Max(minQty, slot.Ingredients[i].Qty*scale)
	}
	slot.Servings = newServings

	newQty := map[string]float64{}
	newRef := map[string]IngredientRef{}
	for _, ref := range slot.Ingredients {
		newQty[refKey(ref)] += ref.Qty
		newRef[refKey(ref)] = ref
	}
	for key, ref := range newRef {
		if _, ok := oldRef[key]; !ok {
			oldRef[key] = ref
		}
	}
	s.applyNetDeltas(oldQty, newQty, oldRef)
	SetSlot(plan, addr, slot)
}

// applyNetDeltas reconciles the ledger with a change in per-key planned
// quantities. Keys present only in old are restored in full, keys present
// only in new are consumed in full, shared keys move by the difference.
func (s *State) applyNetDeltas(oldQty, newQty map[string]float64, refs map[string]IngredientRef) {
	keys := map[string]struct{}{}
	for key := range oldQty {
		keys[key] = struct{}{}
	}
	for key := range newQty {
		keys[key] = struct{}{}
	}
	for key := range keys {
		delta := newQty[key] - oldQty[key]
		if delta > 0 {
			s.consumeQty(refs[key], delta)
		} else if delta < 0 {
			s.restoreQty(refs[key], -delta)
		}
	}
}

// SaveSlotAsMeal turns the slot's current contents into a new pinned meal
// template. The slot and the ledger are left untouched.
func (s *State) SaveSlotAsMeal(addr SlotAddress, name string) string {
	if !s.validAddress(addr) || name == "" {
		return ""
	}
	slot := GetSlot(s.CurrentPlan(), addr)
	if slot == nil {
		return ""
	}
	servings := slot.Servings
	if servings < 1 {
		servings = 1
	}
	meal := Meal{
		ID:              uuid.NewString(),
		Name:            name,
		DefaultServings: servings,
		Pinned:          true,
	}
	for _, ref := range slot.Ingredients {
		line := MealIngredient{Name: ref.Name, Qty: ref.Qty, Category: CategoryOther}
		if ing := s.resolveRef(ref); ing != nil {
			line.Category = ing.Category
		}
		meal.Ingredients = append(meal.Ingredients, line)
	}
	s.Meals = append(s.Meals, meal)
	s.PinnedMealIDs = append(s.PinnedMealIDs, meal.ID)
	return meal.ID
}

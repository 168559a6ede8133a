package planner

import "time"

// MealType identifies one of the four rows of the weekly grid.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the grid rows in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether m is one of the four known meal types.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Category classifies an ingredient. The built-in set can be extended with
// custom categories stored on the State.
type Category string

const (
	CategoryProduce  Category = "produce"
	CategoryProtein  Category = "protein"
	CategoryDairy    Category = "dairy"
	CategoryGrain    Category = "grain"
	CategoryFrozen   Category = "frozen"
	CategoryPantry   Category = "pantry"
	CategoryBeverage Category = "beverage"
	CategoryOther    Category = "other"
)

// BuiltinCategories lists the fixed category enumeration.
var BuiltinCategories = []Category{
	CategoryProduce, CategoryProtein, CategoryDairy, CategoryGrain,
	CategoryFrozen, CategoryPantry, CategoryBeverage, CategoryOther,
}

// Nutrition holds optional per-serving nutrition facts.
type Nutrition struct {
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

// Ingredient is one on-hand stock item in the ledger.
//
// Count is expressed in stock units; ServingsPerCount converts between one
// stock unit and planned serving units (e.g. one "dozen eggs" backing 12
// planned servings).
type Ingredient struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Category         Category   `json:"category"`
	Count            float64    `json:"count"`
	ServingsPerCount float64    `json:"servingsPerCount"`
	Expiration       *time.Time `json:"expiration,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Pinned           bool       `json:"pinned,omitempty"`
	Nutrition        *Nutrition `json:"nutrition,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// MealIngredient is one line of a meal template.
type MealIngredient struct {
	Name     string   `json:"name"`
	Qty      float64  `json:"qty"`
	Category Category `json:"category"`
}

// Meal is a reusable named bundle of ingredient lines. Placing a meal into a
// slot copies its lines; the template itself is never referenced live.
type Meal struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Ingredients        []MealIngredient `json:"ingredients"`
	DefaultServings    int              `json:"defaultServings"`
	CaloriesPerServing float64          `json:"caloriesPerServing,omitempty"`
	Pinned             bool             `json:"pinned,omitempty"`
}

// NutritionGoals holds per-day targets for a profile. Each target only
// applies when its enabled flag is set.
type NutritionGoals struct {
	CaloriesEnabled bool    `json:"caloriesEnabled,omitempty"`
	Calories        float64 `json:"calories,omitempty"`
	ProteinEnabled  bool    `json:"proteinEnabled,omitempty"`
	Protein         float64 `json:"protein,omitempty"`
	CarbsEnabled    bool    `json:"carbsEnabled,omitempty"`
	Carbs           float64 `json:"carbs,omitempty"`
	FatEnabled      bool    `json:"fatEnabled,omitempty"`
	Fat             float64 `json:"fat,omitempty"`
}

// Profile is a person the plan can be split by.
type Profile struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Goals *NutritionGoals `json:"goals,omitempty"`
}

// IngredientRef is one line inside a planned slot. IngredientID is a weak
// reference: it may point at a deleted ledger entry, in which case matching
// falls back to the name. Qty is expressed in serving units.
type IngredientRef struct {
	IngredientID string  `json:"ingredientId,omitempty"`
	Name         string  `json:"name"`
	Qty          float64 `json:"qty"`
}

// SlotEntry is one planned unit of food at a grid target.
type SlotEntry struct {
	MealID      string          `json:"mealId,omitempty"`
	MealName    string          `json:"mealName,omitempty"`
	Ingredients []IngredientRef `json:"ingredients"`
	Servings    int             `json:"servings"`
	Notes       string          `json:"notes,omitempty"`
	IsLeftovers bool            `json:"isLeftovers,omitempty"`
}

// CellEntry holds the family slot plus per-profile slots at one
// (meal type, day) grid position. A cell with no family slot and no non-nil
// profile slot is equivalent to absent and is normalized to nil.
type CellEntry struct {
	Family   *SlotEntry            `json:"family,omitempty"`
	Profiles map[string]*SlotEntry `json:"profiles,omitempty"`
}

// WeekPlan is one week's grid: four meal-type rows by seven day columns.
type WeekPlan struct {
	WeekStart time.Time                  `json:"weekStart"`
	Cells     map[MealType][7]*CellEntry `json:"cells"`
}

// TargetType selects the family slot or one profile's slot within a cell.
type TargetType string

const (
	TargetFamily  TargetType = "family"
	TargetProfile TargetType = "profile"
)

// SlotAddress identifies one slot in the weekly grid. ProfileID is required
// when TargetType is TargetProfile.
type SlotAddress struct {
	MealType   MealType   `json:"mealType"`
	Day        int        `json:"day"` // 0 = Monday .. 6 = Sunday
	TargetType TargetType `json:"targetType"`
	ProfileID  string     `json:"profileId,omitempty"`
}

// SortMode orders the inventory listing.
type SortMode string

const (
	SortByName       SortMode = "name"
	SortByCategory   SortMode = "category"
	SortByExpiration SortMode = "expiration"
	SortByNewest     SortMode = "newest"
)

// ReceiptDraftItem is the shape produced by an external receipt or assistant
// parser, consumed by the import reconciler.
type ReceiptDraftItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Count    float64  `json:"count"`
}

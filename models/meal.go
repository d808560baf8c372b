package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrIngredientIndex is returned by aggregate operations addressed at an
// ingredient position that does not exist on the meal.
var ErrIngredientIndex = errors.New("ingredient index out of range")

// One recognized or logged meal. Ingredients are kept in user order.
type Meal struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"-"` // FK → users.id
	Name      string         `json:"name"`
	ImageURL  string         `json:"imageUrl,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Ingredients []Ingredient `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// Each Ingredient stores the nutrition snapshot for its current amount.
// Nutrient fields scale with Amount; Min/MaxAmount bound the quantity slider.
type Ingredient struct {
	gorm.Model `json:"-"`
	MealID     string `gorm:"type:varchar(36);index" json:"-"`
	Position   int    `json:"-"`

	Name      string  `json:"name"`
	Amount    float64 `json:"amount"` // e.g. 200
	Unit      string  `json:"unit"`   // e.g. "g"
	MinAmount float64 `json:"minAmount"`
	MaxAmount float64 `json:"maxAmount"`

	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	Fiber          float64 `json:"fiber"`
	Sugar          float64 `json:"sugar"`
	SaturatedFat   float64 `json:"saturatedFat"`
	UnsaturatedFat float64 `json:"unsaturatedFat"`
}

// UpdateIngredientAmount clamps newAmount to the ingredient's bounds and
// rescales its nutrient snapshot by newAmount/oldAmount. Other ingredients
// are untouched. A zero current amount has no defined ratio, so only the
// amount itself moves.
func (m *Meal) UpdateIngredientAmount(index int, newAmount float64) error {
	if index < 0 || index >= len(m.Ingredients) {
		return ErrIngredientIndex
	}
	ing := &m.Ingredients[index]

	if newAmount < ing.MinAmount {
		newAmount = ing.MinAmount
	}
	if newAmount > ing.MaxAmount {
		newAmount = ing.MaxAmount
	}

	if ing.Amount > 0 {
		ratio := newAmount / ing.Amount
		ing.Calories *= ratio
		ing.Protein *= ratio
		ing.Carbs *= ratio
		ing.Fat *= ratio
		ing.Fiber *= ratio
		ing.Sugar *= ratio
		ing.SaturatedFat *= ratio
		ing.UnsaturatedFat *= ratio
	}
	ing.Amount = newAmount
	return nil
}

// RemoveIngredient deletes the ingredient at index, preserving order.
func (m *Meal) RemoveIngredient(index int) error {
	if index < 0 || index >= len(m.Ingredients) {
		return ErrIngredientIndex
	}
	m.Ingredients = append(m.Ingredients[:index], m.Ingredients[index+1:]...)
	return nil
}

// AddIngredient appends to the end of the list. No de-duplication: adding
// the same food twice is two rows, exactly as the user asked.
func (m *Meal) AddIngredient(ing Ingredient) {
	m.Ingredients = append(m.Ingredients, ing)
}

func (m *Meal) sumNutrient(field func(*Ingredient) float64) float64 {
	var total float64
	for i := range m.Ingredients {
		total += field(&m.Ingredients[i])
	}
	return total
}

// Derived totals. Always recomputed from the current ingredient list so a
// stale cached value can never be served.
func (m *Meal) TotalCalories() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.Calories })
}

func (m *Meal) TotalProtein() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.Protein })
}

func (m *Meal) TotalCarbs() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.Carbs })
}

func (m *Meal) TotalFat() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.Fat })
}

func (m *Meal) TotalFiber() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.Fiber })
}

func (m *Meal) TotalSugar() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.Sugar })
}

func (m *Meal) TotalSaturatedFat() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.SaturatedFat })
}

func (m *Meal) TotalUnsaturatedFat() float64 {
	return m.sumNutrient(func(i *Ingredient) float64 { return i.UnsaturatedFat })
}

// Clone returns a working copy whose ingredient list is independent of the
// receiver, so an editing session never mutates the stored meal.
func (m *Meal) Clone() *Meal {
	cp := *m
	cp.Ingredients = make([]Ingredient, len(m.Ingredients))
	copy(cp.Ingredients, m.Ingredients)
	return &cp
}

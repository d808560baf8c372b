package models

import "gorm.io/gorm"

// A saved shortcut derived from a meal, for one-tap re-logging. Only the
// macro summary is kept; the ingredient breakdown stays on the meal.
type QuickAddItem struct {
	gorm.Model
	UserID   uint   `gorm:"index" json:"-"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

package models

import (
	"gorm.io/gorm"
)

// Product is a raw catalog ingredient. Macros are per serving weight.
type Product struct {
	gorm.Model
	Username      string  `gorm:"size:64;index" json:"username"` // optional owner
	Name          string  `gorm:"size:128;not null" json:"name"`
	Calories      float64 `json:"calories"`
	Type          string  `gorm:"size:32" json:"type"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Weight        float64 `json:"weight"`
}

// Meal is a prepared catalog dish with a recipe.
type Meal struct {
	gorm.Model
	Username      string  `gorm:"size:64;index" json:"username"`
	Name          string  `gorm:"size:128;not null" json:"name"`
	Calories      float64 `json:"calories"`
	Type          string  `gorm:"size:32" json:"type"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Weight        float64 `json:"weight"`
	Recipe        string  `gorm:"type:text" json:"recipe"`
}

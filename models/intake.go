package models

import (
	"gorm.io/gorm"
)

// UserIntake is one profile submission. Rows are immutable: a new submission
// creates a new row, and the latest row by created_at is the active profile.
// Only the target fields are updated later, by the background targets job.
type UserIntake struct {
	gorm.Model
	Username            string   `gorm:"size:64;index;not null" json:"username"`
	DisplayName         string   `gorm:"size:128" json:"display_name"`
	Gender              string   `gorm:"size:32" json:"gender"`
	Age                 int      `json:"age"`
	Height              float64  `json:"height"` // cm
	Weight              float64  `json:"weight"` // kg
	Goal                string   `gorm:"size:32" json:"goal"`
	ActivityLevel       string   `gorm:"size:32" json:"activity_level"`
	DietaryRestrictions []string `gorm:"serializer:json" json:"dietary_restrictions"`
	Allergies           []string `gorm:"serializer:json" json:"allergies"`
	CookingSkill        string   `gorm:"size:32" json:"cooking_skill"`
	KitchenEquipment    []string `gorm:"serializer:json" json:"kitchen_equipment"`
	PreferredUnits      string   `gorm:"size:16" json:"preferred_units"`

	// Daily targets, filled in by the background computation.
	TargetCalories      *float64 `json:"target_calories"`
	TargetProteins      *float64 `json:"target_proteins"`
	TargetCarbohydrates *float64 `json:"target_carbohydrates"`
	TargetFats          *float64 `json:"target_fats"`
}

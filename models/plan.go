package models

import (
	"gorm.io/gorm"
)

// DailyRationPlan is one generated (or updated) five-meal ration. Plans are
// append-only: an update writes a new plan, the old one stays as history.
type DailyRationPlan struct {
	gorm.Model
	Username    string           `gorm:"size:64;index;not null" json:"username"`
	ModelName   string           `gorm:"column:model;size:64" json:"model"`
	RawResponse string           `gorm:"type:text" json:"raw_response"`
	Items       []DailyRationItem `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type DailyRationItem struct {
	gorm.Model
	PlanID        uint    `gorm:"not null;uniqueIndex:idx_plan_item_position" json:"plan_id"`
	Position      int     `gorm:"not null;uniqueIndex:idx_plan_item_position" json:"position"` // 1..5
	Name          string  `gorm:"size:256" json:"name"`
	Recipe        string  `gorm:"type:text" json:"recipe"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Fiber         float64 `json:"fiber"`
	Eaten         bool    `gorm:"default:false" json:"eaten"`
}

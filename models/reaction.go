package models

import (
	"gorm.io/gorm"
)

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reactions are unique per (target, username); a later reaction overwrites
// the earlier one.

type ProductReaction struct {
	gorm.Model
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_reaction_user" json:"product_id"`
	Username  string `gorm:"size:64;not null;uniqueIndex:idx_product_reaction_user" json:"username"`
	Reaction  string `gorm:"size:16" json:"reaction"`
}

type MealReaction struct {
	gorm.Model
	MealID   uint   `gorm:"not null;uniqueIndex:idx_meal_reaction_user" json:"meal_id"`
	Username string `gorm:"size:64;not null;uniqueIndex:idx_meal_reaction_user" json:"username"`
	Reaction string `gorm:"size:16" json:"reaction"`
}

type ProductFavorite struct {
	gorm.Model
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_favorite_user" json:"product_id"`
	Username  string `gorm:"size:64;not null;uniqueIndex:idx_product_favorite_user" json:"username"`
}

type MealFavorite struct {
	gorm.Model
	MealID   uint   `gorm:"not null;uniqueIndex:idx_meal_favorite_user" json:"meal_id"`
	Username string `gorm:"size:64;not null;uniqueIndex:idx_meal_favorite_user" json:"username"`
}

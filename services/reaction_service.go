package services

import (
	"fmt"

	"backend/models"

	"gorm.io/gorm"
)

type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

func validReaction(reaction string) error {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return fmt.Errorf("invalid reaction %q", reaction)
	}
	return nil
}

// ReactToMeal upserts the user's reaction; a later reaction overwrites the
// earlier one for the same (meal, username).
func (s *ReactionService) ReactToMeal(mealID uint, username, reaction string) error {
	if err := validReaction(reaction); err != nil {
		return err
	}
	var meal models.Meal
	if err := s.db.First(&meal, mealID).Error; err != nil {
		return err
	}
	var r models.MealReaction
	return s.db.
		Where("meal_id = ? AND username = ?", mealID, username).
		Assign(models.MealReaction{MealID: mealID, Username: username, Reaction: reaction}).
		FirstOrCreate(&r).Error
}

func (s *ReactionService) ReactToProduct(productID uint, username, reaction string) error {
	if err := validReaction(reaction); err != nil {
		return err
	}
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return err
	}
	var r models.ProductReaction
	return s.db.
		Where("product_id = ? AND username = ?", productID, username).
		Assign(models.ProductReaction{ProductID: productID, Username: username, Reaction: reaction}).
		FirstOrCreate(&r).Error
}

func (s *ReactionService) FavoriteMeal(mealID uint, username string) error {
	var meal models.Meal
	if err := s.db.First(&meal, mealID).Error; err != nil {
		return err
	}
	var f models.MealFavorite
	return s.db.
		Where("meal_id = ? AND username = ?", mealID, username).
		FirstOrCreate(&f, models.MealFavorite{MealID: mealID, Username: username}).Error
}

func (s *ReactionService) FavoriteProduct(productID uint, username string) error {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return err
	}
	var f models.ProductFavorite
	return s.db.
		Where("product_id = ? AND username = ?", productID, username).
		FirstOrCreate(&f, models.ProductFavorite{ProductID: productID, Username: username}).Error
}

// DislikedMealNames returns the names of catalog meals the user disliked;
// the update workflow replaces plan items whose name is in this set.
func (s *ReactionService) DislikedMealNames(username string) ([]string, error) {
	var names []string
	err := s.db.
		Table("meal_reactions").
		Joins("JOIN meals ON meals.id = meal_reactions.meal_id").
		Where("meal_reactions.username = ? AND meal_reactions.reaction = ?", username, models.ReactionDislike).
		Pluck("meals.name", &names).Error
	return names, err
}

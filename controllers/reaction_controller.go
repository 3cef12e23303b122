package controllers

import (
	"net/http"
	"strconv"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type ReactionInput struct {
	Reaction string `json:"reaction" binding:"required"`
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func ReactToMeal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ReactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewReactionService(config.DB)
	if err := svc.ReactToMeal(id, c.GetString("username"), input.Reaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reaction set: " + input.Reaction})
}

func ReactToProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ReactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewReactionService(config.DB)
	if err := svc.ReactToProduct(id, c.GetString("username"), input.Reaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reaction set: " + input.Reaction})
}

func FavoriteMeal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := services.NewReactionService(config.DB)
	if err := svc.FavoriteMeal(id, c.GetString("username")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorited meal"})
}

func FavoriteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := services.NewReactionService(config.DB)
	if err := svc.FavoriteProduct(id, c.GetString("username")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorited product"})
}

package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type RationController struct {
	Gen *services.RationService
	Upd *services.RationUpdateService
}

func NewRationController(gen *services.RationService, upd *services.RationUpdateService) *RationController {
	return &RationController{Gen: gen, Upd: upd}
}

type GenerateRationInput struct {
	MaxProducts int    `json:"max_products"`
	MaxMeals    int    `json:"max_meals"`
	Model       string `json:"model"`
}

func (rc *RationController) GenerateRation(c *gin.Context) {
	username := c.Param("username")

	var input GenerateRationInput
	_ = c.ShouldBindJSON(&input) // body is optional

	result, err := rc.Gen.Generate(services.GenerateOptions{
		Username:    username,
		MaxProducts: input.MaxProducts,
		MaxMeals:    input.MaxMeals,
		Model:       input.Model,
	})
	if err != nil {
		rationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type UpdateRationInput struct {
	PlanID              uint    `json:"plan_id"`
	TodayOnly           *bool   `json:"today_only"`
	CaloriesLimit       float64 `json:"calories_limit"`
	ProteinsLimitG      float64 `json:"proteins_limit_g"`
	CarbohydratesLimitG float64 `json:"carbohydrates_limit_g"`
	FatsLimitG          float64 `json:"fats_limit_g"`
	MaxProducts         int     `json:"max_products"`
	MaxMeals            int     `json:"max_meals"`
	Model               string  `json:"model"`
}

func (rc *RationController) UpdateRation(c *gin.Context) {
	username := c.Param("username")

	var input UpdateRationInput
	_ = c.ShouldBindJSON(&input)

	todayOnly := true
	if input.TodayOnly != nil {
		todayOnly = *input.TodayOnly
	}

	opts := services.UpdateOptions{
		Username:    username,
		PlanID:      input.PlanID,
		TodayOnly:   todayOnly,
		MaxProducts: input.MaxProducts,
		MaxMeals:    input.MaxMeals,
		Model:       input.Model,
		Save:        true,
	}
	if input.CaloriesLimit > 0 || input.ProteinsLimitG > 0 || input.CarbohydratesLimitG > 0 || input.FatsLimitG > 0 {
		opts.Limits = &services.MacroLimits{
			CaloriesLimit:       input.CaloriesLimit,
			ProteinsLimitG:      input.ProteinsLimitG,
			CarbohydratesLimitG: input.CarbohydratesLimitG,
			FatsLimitG:          input.FatsLimitG,
		}
	}

	result, err := rc.Upd.Update(opts)
	if err != nil {
		rationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func LatestPlan(c *gin.Context) {
	username := c.Param("username")

	svc := services.NewPlanService(config.DB)
	plan, err := svc.Latest(username)
	if err != nil {
		rationError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func rationError(c *gin.Context, err error) {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrProfileNotFound), errors.Is(err, services.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAPIKeyMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package services

import (
	"encoding/json"
	"fmt"
	"log"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

const targetsTemperature = 0.2

// TargetService computes daily macro targets for a user's latest intake via
// the completion API and writes them back onto the intake row. It runs on the
// background worker after an intake submission.
type TargetService struct {
	db        *gorm.DB
	intakes   *IntakeService
	completer Completer
	alerts    *AlertService
}

func NewTargetService(db *gorm.DB, completer Completer, alerts *AlertService) *TargetService {
	return &TargetService{
		db:        db,
		intakes:   NewIntakeService(db),
		completer: completer,
		alerts:    alerts,
	}
}

type targetsProfile struct {
	Gender              string   `json:"gender"`
	Age                 int      `json:"age"`
	HeightCm            float64  `json:"height_cm"`
	WeightKg            float64  `json:"weight_kg"`
	Goal                string   `json:"goal"`
	ActivityLevel       string   `json:"activity_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
}

type targetsSchema struct {
	ProteinGPerDay       string `json:"protein_g_per_day"`
	CarbohydratesGPerDay string `json:"carbohydrates_g_per_day"`
	FatsGPerDay          string `json:"fats_g_per_day"`
	CaloriesKcalPerDay   string `json:"calories_kcal_per_day"`
}

type targetsRequest struct {
	Task         string         `json:"task"`
	UserProfile  targetsProfile `json:"user_profile"`
	OutputSchema targetsSchema  `json:"output_schema"`
	Requirements []string       `json:"requirements"`
}

// TargetsResult mirrors what the original job reported: saved targets, or the
// raw text when the response was not JSON.
type TargetsResult struct {
	Saved   bool               `json:"saved,omitempty"`
	Targets map[string]float64 `json:"targets,omitempty"`
	Raw     string             `json:"raw,omitempty"`
}

func buildTargetsPrompt(rec *models.UserIntake) []ChatMessage {
	user := targetsRequest{
		Task: "Compute realistic daily macro targets based on the user's profile.",
		UserProfile: targetsProfile{
			Gender:              rec.Gender,
			Age:                 rec.Age,
			HeightCm:            rec.Height,
			WeightKg:            rec.Weight,
			Goal:                rec.Goal,
			ActivityLevel:       rec.ActivityLevel,
			DietaryRestrictions: emptyIfNil(rec.DietaryRestrictions),
			Allergies:           emptyIfNil(rec.Allergies),
		},
		OutputSchema: targetsSchema{
			ProteinGPerDay:       "number",
			CarbohydratesGPerDay: "number",
			FatsGPerDay:          "number",
			CaloriesKcalPerDay:   "number (optional)",
		},
		Requirements: []string{
			"Return only valid JSON (no commentary).",
			"Values should be daily totals, in grams for macros, kcal for calories.",
			"Use standard equations; adjust for goal and activity.",
		},
	}
	return []ChatMessage{
		{Role: "system", Content: "You are a nutrition calculator."},
		{Role: "user", Content: mustMarshal(user)},
	}
}

// pickKey returns the first present, non-nil value among alternate key
// spellings the model is known to use.
func pickKey(data map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := data[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ComputeDailyTargets runs the targets prompt and updates the latest intake
// row's target fields. Calories are only written when the model returned them.
func (s *TargetService) ComputeDailyTargets(username string) (*TargetsResult, error) {
	intake, err := s.intakes.Latest(username)
	if err != nil {
		return nil, err
	}

	content, err := s.completer.Chat(buildTargetsPrompt(intake), targetsTemperature, "")
	if err != nil {
		return nil, err
	}
	log.Printf("raw daily targets for %s: %s", username, content)

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return &TargetsResult{Raw: content}, nil
	}

	prot, _ := pickKey(data, "protein_g_per_day", "target_proteins_g", "proteins_g", "target_proteins")
	carb, _ := pickKey(data, "carbohydrates_g_per_day", "target_carbohydrates_g", "carbohydrates_g", "target_carbohydrates")
	fat, _ := pickKey(data, "fats_g_per_day", "target_fats_g", "fats_g", "target_fats")
	cal, hasCal := pickKey(data, "calories_kcal_per_day", "target_calories", "calories")

	protF, _ := utils.CoerceFloat(prot)
	carbF, _ := utils.CoerceFloat(carb)
	fatF, _ := utils.CoerceFloat(fat)

	updates := map[string]any{
		"target_proteins":      protF,
		"target_carbohydrates": carbF,
		"target_fats":          fatF,
	}
	if hasCal {
		calF, _ := utils.CoerceFloat(cal)
		updates["target_calories"] = calF
	}

	if err := s.db.Model(&models.UserIntake{}).Where("id = ?", intake.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("save daily targets: %w", err)
	}

	var refreshed models.UserIntake
	if err := s.db.First(&refreshed, intake.ID).Error; err != nil {
		return nil, err
	}

	targets := map[string]float64{
		"proteins_g":      deref(refreshed.TargetProteins),
		"carbohydrates_g": deref(refreshed.TargetCarbohydrates),
		"fats_g":          deref(refreshed.TargetFats),
		"calories":        deref(refreshed.TargetCalories),
	}

	s.alerts.Emit(username, "info", "Daily macro targets computed")
	return &TargetsResult{Saved: true, Targets: targets}, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

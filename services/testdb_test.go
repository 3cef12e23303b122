package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema. Each call
// gets its own named shared-cache DB so gorm's connection pool sees one store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserIntake{},
		&models.Product{},
		&models.Meal{},
		&models.ProductFavorite{},
		&models.MealFavorite{},
		&models.ProductReaction{},
		&models.MealReaction{},
		&models.DailyRationPlan{},
		&models.DailyRationItem{},
		&models.Alert{},
	))
	return db
}

// stubCompleter records calls and plays back a canned response.
type stubCompleter struct {
	content   string
	err       error
	model     string
	calls     int
	lastMsgs  []ChatMessage
	lastTemp  float64
	lastModel string
}

func (s *stubCompleter) Chat(messages []ChatMessage, temperature float64, model string) (string, error) {
	s.calls++
	s.lastMsgs = messages
	s.lastTemp = temperature
	s.lastModel = model
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func (s *stubCompleter) Model() string { return s.model }

func seedIntake(t *testing.T, db *gorm.DB, username string) *models.UserIntake {
	t.Helper()
	rec := &models.UserIntake{
		Username:            username,
		DisplayName:         "Test User",
		Gender:              "male",
		Age:                 25,
		Height:              175,
		Weight:              70,
		Goal:                "maintain_weight",
		ActivityLevel:       "medium",
		DietaryRestrictions: []string{},
		Allergies:           []string{"peanuts"},
		CookingSkill:        "beginner",
		KitchenEquipment:    []string{"oven"},
		PreferredUnits:      "metric",
	}
	require.NoError(t, db.Create(rec).Error)
	return rec
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		Name: "Oats", Calories: 380, Type: "carbohydrates",
		Proteins: 13, Carbohydrates: 68, Fats: 7, Weight: 100,
	}).Error)
	require.NoError(t, db.Create(&models.Meal{
		Name: "Oatmeal Bowl", Calories: 420, Type: "carbohydrates",
		Proteins: 15, Carbohydrates: 70, Fats: 9, Weight: 300,
		Recipe: "Simmer oats in milk.",
	}).Error)
}

func seedPlan(t *testing.T, db *gorm.DB, username string, names [5]string) (*models.DailyRationPlan, []models.DailyRationItem) {
	t.Helper()
	plan := &models.DailyRationPlan{Username: username, ModelName: "gpt-4o-mini", RawResponse: "{}"}
	require.NoError(t, db.Create(plan).Error)

	var items []models.DailyRationItem
	for i, name := range names {
		item := models.DailyRationItem{
			PlanID:        plan.ID,
			Position:      i + 1,
			Name:          name,
			Recipe:        "recipe for " + name,
			Proteins:      float64(10 + i),
			Carbohydrates: float64(40 + i),
			Fats:          float64(8 + i),
			Fiber:         float64(3 + i),
			Eaten:         i == 0, // first meal already eaten
		}
		require.NoError(t, db.Create(&item).Error)
		items = append(items, item)
	}
	return plan, items
}

package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDailyTargetsSaves(t *testing.T) {
	db := newTestDB(t)
	intake := seedIntake(t, db, "vosh")

	stub := &stubCompleter{content: `{
		"protein_g_per_day": "112g",
		"carbohydrates_g_per_day": 410.58,
		"fats_g_per_day": 56,
		"calories_kcal_per_day": "2594kcal"
	}`}
	svc := NewTargetService(db, stub, NewAlertService(db, nil))

	res, err := svc.ComputeDailyTargets("vosh")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, 0.2, stub.lastTemp)
	assert.Contains(t, stub.lastMsgs[0].Content, "nutrition calculator")

	assert.True(t, res.Saved)
	assert.Equal(t, 112.0, res.Targets["proteins_g"])
	assert.Equal(t, 410.58, res.Targets["carbohydrates_g"])
	assert.Equal(t, 56.0, res.Targets["fats_g"])
	assert.Equal(t, 2594.0, res.Targets["calories"])

	var refreshed models.UserIntake
	require.NoError(t, db.First(&refreshed, intake.ID).Error)
	require.NotNil(t, refreshed.TargetProteins)
	assert.Equal(t, 112.0, *refreshed.TargetProteins)
	require.NotNil(t, refreshed.TargetCalories)
	assert.Equal(t, 2594.0, *refreshed.TargetCalories)

	var alerts []models.Alert
	require.NoError(t, db.Find(&alerts).Error)
	assert.Len(t, alerts, 1)
}

func TestComputeDailyTargetsAlternateKeys(t *testing.T) {
	db := newTestDB(t)
	seedIntake(t, db, "vosh")

	stub := &stubCompleter{content: `{
		"target_proteins_g": 120,
		"carbohydrates_g": 300,
		"target_fats": 60
	}`}
	svc := NewTargetService(db, stub, nil)

	res, err := svc.ComputeDailyTargets("vosh")
	require.NoError(t, err)

	assert.True(t, res.Saved)
	assert.Equal(t, 120.0, res.Targets["proteins_g"])
	assert.Equal(t, 300.0, res.Targets["carbohydrates_g"])
	assert.Equal(t, 60.0, res.Targets["fats_g"])
	// calories were not returned, so none are written
	assert.Equal(t, 0.0, res.Targets["calories"])
}

func TestComputeDailyTargetsCaloriesPreservedWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	intake := seedIntake(t, db, "vosh")
	prior := 2100.0
	require.NoError(t, db.Model(intake).Update("target_calories", prior).Error)

	stub := &stubCompleter{content: `{"protein_g_per_day":100,"carbohydrates_g_per_day":250,"fats_g_per_day":70}`}
	svc := NewTargetService(db, stub, nil)

	res, err := svc.ComputeDailyTargets("vosh")
	require.NoError(t, err)
	assert.Equal(t, 2100.0, res.Targets["calories"])
}

func TestComputeDailyTargetsRawFallback(t *testing.T) {
	db := newTestDB(t)
	intake := seedIntake(t, db, "vosh")

	stub := &stubCompleter{content: "Sure! Here are your targets: lots of protein."}
	svc := NewTargetService(db, stub, nil)

	res, err := svc.ComputeDailyTargets("vosh")
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.Equal(t, stub.content, res.Raw)

	var refreshed models.UserIntake
	require.NoError(t, db.First(&refreshed, intake.ID).Error)
	assert.Nil(t, refreshed.TargetProteins)
}

func TestComputeDailyTargetsMissingIntake(t *testing.T) {
	db := newTestDB(t)
	stub := &stubCompleter{}
	svc := NewTargetService(db, stub, nil)

	_, err := svc.ComputeDailyTargets("nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Zero(t, stub.calls)
}

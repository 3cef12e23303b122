package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntake() IntakeInput {
	return IntakeInput{
		Username:      "vosh",
		DisplayName:   "Vosh",
		Gender:        "male",
		Age:           25,
		Height:        175,
		Weight:        70,
		Goal:          "maintain_weight",
		ActivityLevel: "medium",
		Allergies:     []string{"peanuts"},
	}
}

func TestValidateIntakeRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*IntakeInput)
		ok     bool
	}{
		{"valid", func(in *IntakeInput) {}, true},
		{"missing username", func(in *IntakeInput) { in.Username = "" }, false},
		{"missing display name", func(in *IntakeInput) { in.DisplayName = "" }, false},
		{"age too low", func(in *IntakeInput) { in.Age = 12 }, false},
		{"age at lower bound", func(in *IntakeInput) { in.Age = 13 }, true},
		{"age too high", func(in *IntakeInput) { in.Age = 121 }, false},
		{"height too low", func(in *IntakeInput) { in.Height = 99 }, false},
		{"height at upper bound", func(in *IntakeInput) { in.Height = 250 }, true},
		{"weight too low", func(in *IntakeInput) { in.Weight = 29 }, false},
		{"weight at bounds", func(in *IntakeInput) { in.Weight = 300 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validIntake()
			tt.mutate(&in)
			err := ValidateIntake(in)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIntakeCreateRejectsInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntakeService(db)

	in := validIntake()
	in.Age = 7
	_, err := svc.Create(in)
	require.Error(t, err)

	_, err = svc.Latest("vosh")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestIntakeLatestWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntakeService(db)

	first, err := svc.Create(validIntake())
	require.NoError(t, err)
	require.NoError(t, db.Model(first).Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)

	second := validIntake()
	second.Weight = 68
	_, err = svc.Create(second)
	require.NoError(t, err)

	got, err := svc.Latest("vosh")
	require.NoError(t, err)
	assert.Equal(t, 68.0, got.Weight)
}

func TestIntakeSnapshotFlattens(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntakeService(db)

	seedIntake(t, db, "vosh")

	profile, err := svc.Snapshot("vosh")
	require.NoError(t, err)
	assert.Equal(t, "vosh", profile.Username)
	assert.Equal(t, 175.0, profile.HeightCm)
	assert.Equal(t, []string{"peanuts"}, profile.Allergies)
	// nil slices flatten to empty, never null in the prompt payload
	assert.NotNil(t, profile.DietaryRestrictions)

	_, err = svc.Snapshot("nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDefaultProfileBaseline(t *testing.T) {
	p := DefaultProfile("cli-user")
	assert.Equal(t, "cli-user", p.Username)
	assert.Equal(t, 25, p.Age)
	assert.Equal(t, 175.0, p.HeightCm)
	assert.Equal(t, 70.0, p.WeightKg)
	assert.Equal(t, "medium", p.ActivityLevel)
	assert.Equal(t, "maintain_weight", p.Goal)
	assert.Equal(t, "beginner", p.CookingSkill)

	assert.Equal(t, "unknown", DefaultProfile("").Username)
}

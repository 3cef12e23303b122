package services

import (
	"errors"
	"fmt"

	"backend/models"

	"gorm.io/gorm"
)

type IntakeService struct {
	db *gorm.DB
}

func NewIntakeService(db *gorm.DB) *IntakeService {
	return &IntakeService{db: db}
}

type IntakeInput struct {
	Username            string   `json:"username"`
	DisplayName         string   `json:"display_name"`
	Gender              string   `json:"gender"`
	Age                 int      `json:"age"`
	Height              float64  `json:"height"`
	Weight              float64  `json:"weight"`
	Goal                string   `json:"goal"`
	ActivityLevel       string   `json:"activity_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
	CookingSkill        string   `json:"cooking_skill"`
	KitchenEquipment    []string `json:"kitchen_equipment"`
	PreferredUnits      string   `json:"preferred_units"`
}

// ValidateIntake enforces the intake ranges: age 13-120, height 100-250 cm,
// weight 30-300 kg, username and display name present.
func ValidateIntake(in IntakeInput) error {
	if in.Username == "" || in.DisplayName == "" {
		return errors.New("username and display_name are required")
	}
	if in.Age < 13 || in.Age > 120 {
		return fmt.Errorf("age %d out of range 13-120", in.Age)
	}
	if in.Height < 100 || in.Height > 250 {
		return fmt.Errorf("height %.1f out of range 100-250 cm", in.Height)
	}
	if in.Weight < 30 || in.Weight > 300 {
		return fmt.Errorf("weight %.1f out of range 30-300 kg", in.Weight)
	}
	return nil
}

// Create stores a new intake row. Rows are never updated afterwards; each
// submission is a fresh snapshot.
func (s *IntakeService) Create(in IntakeInput) (*models.UserIntake, error) {
	if err := ValidateIntake(in); err != nil {
		return nil, err
	}
	rec := &models.UserIntake{
		Username:            in.Username,
		DisplayName:         in.DisplayName,
		Gender:              in.Gender,
		Age:                 in.Age,
		Height:              in.Height,
		Weight:              in.Weight,
		Goal:                in.Goal,
		ActivityLevel:       in.ActivityLevel,
		DietaryRestrictions: in.DietaryRestrictions,
		Allergies:           in.Allergies,
		CookingSkill:        in.CookingSkill,
		KitchenEquipment:    in.KitchenEquipment,
		PreferredUnits:      in.PreferredUnits,
	}
	if err := s.db.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// Latest returns the newest intake row for a username, latest-wins.
func (s *IntakeService) Latest(username string) (*models.UserIntake, error) {
	var rec models.UserIntake
	err := s.db.
		Where("username = ?", username).
		Order("created_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Snapshot loads the latest intake and flattens it into a prompt payload.
func (s *IntakeService) Snapshot(username string) (*ProfilePayload, error) {
	rec, err := s.Latest(username)
	if err != nil {
		return nil, err
	}
	p := ProfileFromIntake(rec)
	return &p, nil
}

func ProfileFromIntake(rec *models.UserIntake) ProfilePayload {
	return ProfilePayload{
		Username:            rec.Username,
		DisplayName:         rec.DisplayName,
		Gender:              rec.Gender,
		Age:                 rec.Age,
		HeightCm:            rec.Height,
		WeightKg:            rec.Weight,
		Goal:                rec.Goal,
		ActivityLevel:       rec.ActivityLevel,
		DietaryRestrictions: emptyIfNil(rec.DietaryRestrictions),
		Allergies:           emptyIfNil(rec.Allergies),
		CookingSkill:        rec.CookingSkill,
		KitchenEquipment:    emptyIfNil(rec.KitchenEquipment),
		PreferredUnits:      rec.PreferredUnits,
	}
}

// DefaultProfile is the CLI fallback when no intake record exists, so the
// generation workflow never blocks on a missing profile outside the web path.
func DefaultProfile(username string) ProfilePayload {
	if username == "" {
		username = "unknown"
	}
	return ProfilePayload{
		Username:            username,
		DisplayName:         "User",
		Gender:              "prefer_not_to_say",
		Age:                 25,
		HeightCm:            175.0,
		WeightKg:            70.0,
		Goal:                "maintain_weight",
		ActivityLevel:       "medium",
		DietaryRestrictions: []string{},
		Allergies:           []string{},
		CookingSkill:        "beginner",
		KitchenEquipment:    []string{},
		PreferredUnits:      "metric",
	}
}

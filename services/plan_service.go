package services

import (
	"errors"
	"sort"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type PlanService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// Save writes a plan and its items as a single transaction: either the plan
// row and every item land, or nothing does.
func (s *PlanService) Save(username, modelName, rawResponse string, items []models.DailyRationItem) (*models.DailyRationPlan, error) {
	plan := &models.DailyRationPlan{
		Username:    username,
		ModelName:   modelName,
		RawResponse: rawResponse,
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].PlanID = plan.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Resolve picks the plan an update targets: an explicit id when given, else
// the newest plan since local midnight UTC when todayOnly, else the newest
// plan overall.
func (s *PlanService) Resolve(username string, planID uint, todayOnly bool) (*models.DailyRationPlan, []models.DailyRationItem, error) {
	q := s.db.Where("username = ?", username)
	if planID != 0 {
		q = q.Where("id = ?", planID)
	} else if todayOnly {
		startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
		q = q.Where("created_at >= ?", startOfDay)
	}

	var plan models.DailyRationPlan
	err := q.Order("created_at DESC").First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	items, err := s.Items(plan.ID)
	if err != nil {
		return nil, nil, err
	}
	return &plan, items, nil
}

// Latest returns the newest plan with items preloaded, for web reads.
func (s *PlanService) Latest(username string) (*models.DailyRationPlan, error) {
	var plan models.DailyRationPlan
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("username = ?", username).
		Order("created_at DESC").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) Items(planID uint) ([]models.DailyRationItem, error) {
	var items []models.DailyRationItem
	err := s.db.
		Where("plan_id = ?", planID).
		Order("position ASC").
		Find(&items).Error
	return items, err
}

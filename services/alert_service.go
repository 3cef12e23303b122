package services

import (
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// AlertService persists per-user alerts and fans them out over the hub.
type AlertService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewAlertService(db *gorm.DB, hub *RealtimeHub) *AlertService {
	return &AlertService{db: db, hub: hub}
}

// Emit is safe to call from anywhere, including on a nil service.
func (s *AlertService) Emit(username, typ, message string) {
	if s == nil || s.db == nil {
		return
	}
	a := &models.Alert{Username: username, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = s.db.Create(a).Error

	if s.hub != nil {
		s.hub.Broadcast(username, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
}

func (s *AlertService) List(username string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

package services

import (
	"fmt"
	"log"

	"backend/config"

	"gorm.io/gorm"
)

const rationTemperature = 0.6

// RationService runs the full generation workflow: profile, catalog snapshot,
// prompt, completion call, reconciliation, persistence.
type RationService struct {
	intakes   *IntakeService
	catalog   *CatalogService
	plans     *PlanService
	completer Completer
	alerts    *AlertService
}

func NewRationService(db *gorm.DB, completer Completer, alerts *AlertService) *RationService {
	return &RationService{
		intakes:   NewIntakeService(db),
		catalog:   NewCatalogService(db),
		plans:     NewPlanService(db),
		completer: completer,
		alerts:    alerts,
	}
}

type GenerateOptions struct {
	Username string
	// Profile, when set, skips the intake lookup. The CLI passes a
	// flag-built profile here when the user has no intake record.
	Profile     *ProfilePayload
	MaxProducts int
	MaxMeals    int
	Model       string
}

// RationResult is what both web and CLI surfaces render. On a parse failure
// Data is {"raw": <text>} and nothing is persisted.
type RationResult struct {
	Data        map[string]any `json:"data"`
	PlanID      uint           `json:"plan_id,omitempty"`
	Persisted   bool           `json:"persisted"`
	ParseFailed bool           `json:"parse_failed,omitempty"`
	Violations  []string       `json:"violations,omitempty"`
	ModelName   string         `json:"model"`
}

// resolveModel picks the model that is actually sent upstream: an explicit
// caller override, else the completer's configured model, else the default.
// The persisted plan row records this same value.
func resolveModel(model string, completer Completer) string {
	if model != "" {
		return model
	}
	if completer != nil {
		if m := completer.Model(); m != "" {
			return m
		}
	}
	return config.DefaultModel
}

// Generate produces a new five-meal plan. A plan is persisted only when a
// username is present and the response held exactly five well-formed items.
func (s *RationService) Generate(opts GenerateOptions) (*RationResult, error) {
	profile := opts.Profile
	if profile == nil {
		if opts.Username == "" {
			return nil, fmt.Errorf("username or profile is required")
		}
		snapshot, err := s.intakes.Snapshot(opts.Username)
		if err != nil {
			return nil, err
		}
		profile = snapshot
	}

	catalog, err := s.catalog.Snapshot(opts.MaxProducts, opts.MaxMeals)
	if err != nil {
		return nil, err
	}

	messages := BuildGenerationPrompt(*profile, *catalog)
	modelName := resolveModel(opts.Model, s.completer)

	content, err := s.completer.Chat(messages, rationTemperature, modelName)
	if err != nil {
		return nil, err
	}

	result := &RationResult{ModelName: modelName}

	rec, err := ReconcileGeneration(content)
	if err != nil {
		log.Printf("ration generation for %q returned unparseable JSON", opts.Username)
		result.Data = map[string]any{"raw": content}
		result.ParseFailed = true
		return result, nil
	}

	result.Data = rec.Data
	result.Violations = rec.Violations

	if opts.Username == "" || !rec.Complete {
		return result, nil
	}

	plan, err := s.plans.Save(opts.Username, modelName, content, rec.Items)
	if err != nil {
		return nil, fmt.Errorf("persist ration plan: %w", err)
	}
	result.PlanID = plan.ID
	result.Persisted = true

	s.alerts.Emit(opts.Username, "info", fmt.Sprintf("Daily ration generated (plan %d)", plan.ID))
	return result, nil
}

package services

import (
	"fmt"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// RationUpdateService replaces only the disliked meals of an existing plan,
// persisting the merged result as a brand-new plan so history is kept.
type RationUpdateService struct {
	intakes   *IntakeService
	catalog   *CatalogService
	plans     *PlanService
	reactions *ReactionService
	completer Completer
	alerts    *AlertService
}

func NewRationUpdateService(db *gorm.DB, completer Completer, alerts *AlertService) *RationUpdateService {
	return &RationUpdateService{
		intakes:   NewIntakeService(db),
		catalog:   NewCatalogService(db),
		plans:     NewPlanService(db),
		reactions: NewReactionService(db),
		completer: completer,
		alerts:    alerts,
	}
}

type UpdateOptions struct {
	Username  string
	PlanID    uint
	TodayOnly bool
	// Limits apply only when all four are supplied; otherwise they are
	// estimated from the profile.
	Limits      *MacroLimits
	MaxProducts int
	MaxMeals    int
	Model       string
	Save        bool
}

type UpdateResult struct {
	Data        map[string]any `json:"data"`
	PlanID      uint           `json:"plan_id"`
	NewPlanID   uint           `json:"new_plan_id,omitempty"`
	NoOp        bool           `json:"no_op,omitempty"`
	Persisted   bool           `json:"persisted"`
	ParseFailed bool           `json:"parse_failed,omitempty"`
	Violations  []string       `json:"violations,omitempty"`
	ModelName   string         `json:"model"`
}

func (o UpdateOptions) explicitLimits() *MacroLimits {
	l := o.Limits
	if l == nil {
		return nil
	}
	if l.CaloriesLimit > 0 && l.ProteinsLimitG > 0 && l.CarbohydratesLimitG > 0 && l.FatsLimitG > 0 {
		return l
	}
	return nil
}

// Update runs the replacement workflow. When no plan item matches a disliked
// meal name it short-circuits without calling the completion API.
func (s *RationUpdateService) Update(opts UpdateOptions) (*UpdateResult, error) {
	plan, items, err := s.plans.Resolve(opts.Username, opts.PlanID, opts.TodayOnly)
	if err != nil {
		return nil, err
	}

	intake, err := s.intakes.Latest(opts.Username)
	if err != nil {
		return nil, err
	}

	limits := opts.explicitLimits()
	if limits == nil {
		targets := utils.EstimateMacros(intake.Weight, intake.Height, intake.Age,
			intake.Gender, intake.ActivityLevel, intake.Goal)
		l := LimitsFromTargets(targets)
		limits = &l
	}

	dislikedNames, err := s.reactions.DislikedMealNames(opts.Username)
	if err != nil {
		return nil, err
	}
	disliked := make(map[string]struct{}, len(dislikedNames))
	for _, name := range dislikedNames {
		disliked[name] = struct{}{}
	}

	var fixed []RationItemPayload
	var replacePositions []int
	for _, it := range items {
		if _, bad := disliked[it.Name]; bad {
			replacePositions = append(replacePositions, it.Position)
			continue
		}
		fixed = append(fixed, RationItemPayload{
			Position:       it.Position,
			Name:           it.Name,
			Recipe:         it.Recipe,
			ProteinsG:      it.Proteins,
			CarbohydratesG: it.Carbohydrates,
			FatsG:          it.Fats,
			FiberG:         it.Fiber,
		})
	}

	if len(replacePositions) == 0 {
		return &UpdateResult{
			Data:      map[string]any{"message": "No disliked items to replace.", "plan_id": plan.ID},
			PlanID:    plan.ID,
			NoOp:      true,
			ModelName: resolveModel(opts.Model, s.completer),
		}, nil
	}

	maxMeals := opts.MaxMeals
	if maxMeals <= 0 {
		maxMeals = DefaultMaxMealsUpdate
	}
	catalog, err := s.catalog.Snapshot(opts.MaxProducts, maxMeals)
	if err != nil {
		return nil, err
	}

	profile := ProfileFromIntake(intake)
	profile.Username = "" // the update prompt identifies the user by profile fields only
	messages := BuildUpdatePrompt(profile, *catalog, fixed, replacePositions, *limits)
	modelName := resolveModel(opts.Model, s.completer)

	content, err := s.completer.Chat(messages, rationTemperature, modelName)
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{PlanID: plan.ID, ModelName: modelName}

	rec, err := ReconcileUpdate(content, items)
	if err != nil {
		result.Data = map[string]any{"raw": content}
		result.ParseFailed = true
		return result, nil
	}

	result.Data = rec.Data
	result.Violations = rec.Violations

	if !opts.Save || !rec.Complete {
		return result, nil
	}

	newPlan, err := s.plans.Save(opts.Username, modelName, content, rec.Items)
	if err != nil {
		return nil, fmt.Errorf("persist updated plan: %w", err)
	}
	result.NewPlanID = newPlan.ID
	result.Persisted = true
	result.Data["new_plan_id"] = newPlan.ID

	s.alerts.Emit(opts.Username, "info",
		fmt.Sprintf("Daily ration updated (plan %d replaces %d)", newPlan.ID, plan.ID))
	return result, nil
}

// SumMacros totals a plan's items; calories derive from the macros.
func SumMacros(items []models.DailyRationItem) map[string]float64 {
	total := map[string]float64{"proteins": 0, "carbohydrates": 0, "fats": 0, "calories": 0}
	for _, it := range items {
		total["proteins"] += it.Proteins
		total["carbohydrates"] += it.Carbohydrates
		total["fats"] += it.Fats
		total["calories"] += it.Proteins*4 + it.Carbohydrates*4 + it.Fats*9
	}
	return total
}

package services

import (
	"encoding/json"
	"fmt"

	"backend/models"
	"backend/utils"
)

// RationSize is the fixed number of meals in a complete daily ration.
const RationSize = 5

// ReconcileResult is the outcome of validating one LLM response. Violations
// enumerate every schema problem found; Complete reports whether the
// structural shape (a daily_ration list of exactly RationSize items) held.
// Field-level coercion defaults are reported but do not block persistence.
type ReconcileResult struct {
	Items      []models.DailyRationItem
	Data       map[string]any
	Violations []string
	Complete   bool
}

// ReconcileGeneration parses a generation response into persistable items.
// A JSON parse failure is returned as an error; the caller surfaces the raw
// text instead of persisting.
func ReconcileGeneration(content string) (*ReconcileResult, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	res := &ReconcileResult{Data: data}

	rawList, ok := data["daily_ration"].([]any)
	if !ok {
		res.Violations = append(res.Violations, "daily_ration is missing or not a list")
		return res, nil
	}
	if len(rawList) != RationSize {
		res.Violations = append(res.Violations,
			fmt.Sprintf("expected exactly %d items in daily_ration, got %d", RationSize, len(rawList)))
	} else {
		res.Complete = true
	}

	for idx, raw := range rawList {
		position := idx + 1
		entry, ok := raw.(map[string]any)
		if !ok {
			res.Violations = append(res.Violations, fmt.Sprintf("item %d is not an object", position))
			res.Complete = false
			continue
		}
		item, fieldViolations := coerceItem(entry, position)
		res.Items = append(res.Items, item)
		res.Violations = append(res.Violations, fieldViolations...)
	}

	return res, nil
}

// ReconcileUpdate merges an update response over the original plan items.
// Replaced positions get coerced fields with eaten reset; everything else is
// carried forward verbatim, prior eaten state included.
func ReconcileUpdate(content string, original []models.DailyRationItem) (*ReconcileResult, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	res := &ReconcileResult{Data: data}

	rawList, ok := data["replacements"].([]any)
	if !ok {
		res.Violations = append(res.Violations, "replacements is missing or not a list")
		return res, nil
	}

	byPosition := make(map[int]map[string]any, len(rawList))
	for idx, raw := range rawList {
		entry, ok := raw.(map[string]any)
		if !ok {
			res.Violations = append(res.Violations, fmt.Sprintf("replacement %d is not an object", idx+1))
			continue
		}
		pos, defaulted := utils.CoerceInt(entry["position"])
		if defaulted || pos < 1 || pos > RationSize {
			res.Violations = append(res.Violations, fmt.Sprintf("replacement %d has invalid position", idx+1))
			continue
		}
		byPosition[pos] = entry
	}

	for _, orig := range original {
		entry, replaced := byPosition[orig.Position]
		if !replaced {
			res.Items = append(res.Items, models.DailyRationItem{
				Position:      orig.Position,
				Name:          orig.Name,
				Recipe:        orig.Recipe,
				Proteins:      orig.Proteins,
				Carbohydrates: orig.Carbohydrates,
				Fats:          orig.Fats,
				Fiber:         orig.Fiber,
				Eaten:         orig.Eaten,
			})
			continue
		}
		item, fieldViolations := coerceItem(entry, orig.Position)
		res.Items = append(res.Items, item)
		res.Violations = append(res.Violations, fieldViolations...)
	}

	res.Complete = len(res.Items) == RationSize
	return res, nil
}

// coerceItem builds one item row from an untrusted object, reporting each
// field it had to default.
func coerceItem(entry map[string]any, position int) (models.DailyRationItem, []string) {
	var violations []string

	name, nameDefaulted := utils.CoerceString(entry["name"])
	if name == "" {
		violations = append(violations, fmt.Sprintf("item %d: name missing", position))
	} else if nameDefaulted {
		violations = append(violations, fmt.Sprintf("item %d: name defaulted", position))
	}
	recipe, _ := utils.CoerceString(entry["recipe"])

	item := models.DailyRationItem{
		Position: position,
		Name:     utils.Truncate(name, 256),
		Recipe:   recipe,
		Eaten:    false,
	}

	macro := func(key string, dst *float64) {
		v, defaulted := utils.CoerceFloat(entry[key])
		if defaulted && entry[key] != nil {
			violations = append(violations, fmt.Sprintf("item %d: %s defaulted to 0", position, key))
		}
		*dst = v
	}
	macro("proteins_g", &item.Proteins)
	macro("carbohydrates_g", &item.Carbohydrates)
	macro("fats_g", &item.Fats)
	macro("fiber_g", &item.Fiber)

	return item, violations
}

package utils

import "math"

// MacroTargets are daily totals: kcal for calories, grams for the macros.
type MacroTargets struct {
	Calories      float64 `json:"calories_limit"`
	Proteins      float64 `json:"proteins_limit_g"`
	Carbohydrates float64 `json:"carbohydrates_limit_g"`
	Fats          float64 `json:"fats_limit_g"`
}

var activityFactors = map[string]float64{
	"low":    1.2,
	"medium": 1.55,
	"high":   1.725,
}

var goalAdjustments = map[string]float64{
	"lose_weight":     -500,
	"maintain_weight": 0,
	"gain_weight":     500,
}

// EstimateMacros approximates daily macro targets from a profile.
// BMR via Mifflin-St Jeor, TDEE via activity factor, calories adjusted for
// the goal with a 1200 kcal floor. Protein and fat get per-kg floors and
// carbohydrates take the remaining energy. Always returns a usable value.
func EstimateMacros(weightKg, heightCm float64, age int, gender, activityLevel, goal string) MacroTargets {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	}

	factor, ok := activityFactors[activityLevel]
	if !ok {
		factor = 1.4
	}
	tdee := bmr * factor

	calories := math.Max(1200, tdee+goalAdjustments[goal])
	proteins := math.Max(60, math.Round(1.6*weightKg))
	fats := math.Max(40, math.Round(0.8*weightKg))
	carbs := math.Max(0, (calories-proteins*4-fats*9)/4)

	return MacroTargets{
		Calories:      calories,
		Proteins:      proteins,
		Carbohydrates: carbs,
		Fats:          fats,
	}
}

// Round2 rounds to two decimals, for values sent to the model as limits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

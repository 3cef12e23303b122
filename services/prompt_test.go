package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() ProfilePayload {
	return ProfilePayload{
		Username:            "vosh",
		DisplayName:         "Vosh",
		Gender:              "male",
		Age:                 25,
		HeightCm:            175,
		WeightKg:            70,
		Goal:                "maintain_weight",
		ActivityLevel:       "medium",
		DietaryRestrictions: []string{"vegetarian"},
		Allergies:           []string{"peanuts"},
		CookingSkill:        "beginner",
		KitchenEquipment:    []string{"oven", "stovetop"},
		PreferredUnits:      "metric",
	}
}

func sampleCatalog() CatalogPayload {
	return CatalogPayload{
		Products: []CatalogProduct{
			{ID: 1, Name: "Oats", Calories: 380, Proteins: 13, Carbohydrates: 68, Fats: 7, Type: "carbohydrates"},
		},
		Meals: []CatalogMeal{
			{ID: 1, Name: "Oatmeal Bowl", Calories: 420, Proteins: 15, Carbohydrates: 70, Fats: 9, Type: "carbohydrates", Recipe: "Simmer oats in milk."},
		},
	}
}

func TestGenerationPromptDeterministic(t *testing.T) {
	first := BuildGenerationPrompt(sampleProfile(), sampleCatalog())
	second := BuildGenerationPrompt(sampleProfile(), sampleCatalog())

	require.Len(t, first, 2)
	assert.Equal(t, "system", first[0].Role)
	assert.Equal(t, "user", first[1].Role)
	// byte-identical payloads for identical inputs
	assert.Equal(t, first[0].Content, second[0].Content)
	assert.Equal(t, first[1].Content, second[1].Content)
}

func TestGenerationPromptContent(t *testing.T) {
	msgs := BuildGenerationPrompt(sampleProfile(), sampleCatalog())

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(msgs[1].Content), &payload))

	assert.Equal(t, "Generate a 5-meal daily ration.", payload["task"])
	constraints := payload["constraints"].(map[string]any)
	assert.Equal(t, true, constraints["use_only_from_catalog"])
	assert.Equal(t, []any{"peanuts"}, constraints["avoid_allergens"])

	schema := payload["output_schema"].(map[string]any)
	assert.Contains(t, schema, "daily_ration")
	assert.Contains(t, msgs[0].Content, "exactly 5 meals")

	reqs := payload["requirements"].([]any)
	assert.Equal(t, "Exactly 5 items in daily_ration.", reqs[0])
}

func TestUpdatePromptContent(t *testing.T) {
	fixed := []RationItemPayload{
		{Position: 1, Name: "Oatmeal Bowl", Recipe: "Simmer oats in milk.", ProteinsG: 15, CarbohydratesG: 70, FatsG: 9, FiberG: 4},
	}
	limits := MacroLimits{CaloriesLimit: 2594.31, ProteinsLimitG: 112, CarbohydratesLimitG: 410.58, FatsLimitG: 56}

	msgs := BuildUpdatePrompt(sampleProfile(), sampleCatalog(), fixed, []int{3, 5}, limits)
	require.Len(t, msgs, 2)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(msgs[1].Content), &payload))

	assert.Equal(t, "Replace the disliked items only, keeping others unchanged.", payload["task"])
	assert.Equal(t, []any{float64(3), float64(5)}, payload["replace_positions"])

	gotLimits := payload["limits"].(map[string]any)
	assert.Equal(t, 2594.31, gotLimits["calories_limit"])
	assert.Equal(t, 112.0, gotLimits["proteins_limit_g"])

	schema := payload["output_schema"].(map[string]any)
	assert.Contains(t, schema, "replacements")

	// identical inputs serialize identically
	again := BuildUpdatePrompt(sampleProfile(), sampleCatalog(), fixed, []int{3, 5}, limits)
	assert.Equal(t, msgs[1].Content, again[1].Content)
}

func TestUpdatePromptNilSlices(t *testing.T) {
	msgs := BuildUpdatePrompt(sampleProfile(), sampleCatalog(), nil, nil, MacroLimits{})

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(msgs[1].Content), &payload))
	assert.Equal(t, []any{}, payload["fixed_items"])
	assert.Equal(t, []any{}, payload["replace_positions"])
}

package services

import (
	"encoding/json"

	"backend/utils"
)

// Prompt construction is pure: typed payloads marshaled with encoding/json,
// which keeps field order (and therefore the serialized prompt) stable for
// identical inputs.

type ProfilePayload struct {
	Username            string   `json:"username,omitempty"`
	DisplayName         string   `json:"display_name"`
	Gender              string   `json:"gender"`
	Age                 int      `json:"age"`
	HeightCm            float64  `json:"height_cm"`
	WeightKg            float64  `json:"weight_kg"`
	Goal                string   `json:"goal"`
	ActivityLevel       string   `json:"activity_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
	CookingSkill        string   `json:"cooking_skill"`
	KitchenEquipment    []string `json:"kitchen_equipment"`
	PreferredUnits      string   `json:"preferred_units"`
}

type CatalogProduct struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Type          string  `json:"type"`
}

type CatalogMeal struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Type          string  `json:"type"`
	Recipe        string  `json:"recipe"`
}

type CatalogPayload struct {
	Products []CatalogProduct `json:"products"`
	Meals    []CatalogMeal    `json:"meals"`
}

// RationItemPayload is a plan item as it travels through prompts: either a
// fixed item the model must keep, or a merged result row.
type RationItemPayload struct {
	Position       int     `json:"position"`
	Name           string  `json:"name"`
	Recipe         string  `json:"recipe"`
	ProteinsG      float64 `json:"proteins_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatsG          float64 `json:"fats_g"`
	FiberG         float64 `json:"fiber_g"`
}

type MacroLimits struct {
	CaloriesLimit       float64 `json:"calories_limit"`
	ProteinsLimitG      float64 `json:"proteins_limit_g"`
	CarbohydratesLimitG float64 `json:"carbohydrates_limit_g"`
	FatsLimitG          float64 `json:"fats_limit_g"`
}

// LimitsFromTargets rounds estimator output into prompt-ready limits.
func LimitsFromTargets(t utils.MacroTargets) MacroLimits {
	return MacroLimits{
		CaloriesLimit:       utils.Round2(t.Calories),
		ProteinsLimitG:      utils.Round2(t.Proteins),
		CarbohydratesLimitG: utils.Round2(t.Carbohydrates),
		FatsLimitG:          utils.Round2(t.Fats),
	}
}

type rationItemSchema struct {
	Name           string `json:"name"`
	Recipe         string `json:"recipe"`
	ProteinsG      string `json:"proteins_g"`
	CarbohydratesG string `json:"carbohydrates_g"`
	FatsG          string `json:"fats_g"`
	FiberG         string `json:"fiber_g"`
}

type generationSchema struct {
	DailyRation []rationItemSchema `json:"daily_ration"`
}

type generationConstraints struct {
	UseOnlyFromCatalog  bool     `json:"use_only_from_catalog"`
	AvoidAllergens      []string `json:"avoid_allergens"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	KitchenEquipment    []string `json:"kitchen_equipment"`
	PreferredUnits      string   `json:"preferred_units"`
}

type generationRequest struct {
	Task         string                `json:"task"`
	Constraints  generationConstraints `json:"constraints"`
	UserProfile  ProfilePayload        `json:"user_profile"`
	Catalog      CatalogPayload        `json:"catalog"`
	OutputSchema generationSchema      `json:"output_schema"`
	Requirements []string              `json:"requirements"`
}

const generationSystemPrompt = "You are a nutrition assistant. Create a practical daily meal plan using ONLY the provided meals/products. " +
	"Respect the user's allergies, dietary restrictions, goal, and available kitchen equipment. " +
	"Daily ration must have exactly 5 meals. Keep recipes feasible for the user's cooking skill. " +
	"Return only valid JSON that conforms to the specified schema."

// BuildGenerationPrompt assembles the full-generation instruction set.
func BuildGenerationPrompt(profile ProfilePayload, catalog CatalogPayload) []ChatMessage {
	user := generationRequest{
		Task: "Generate a 5-meal daily ration.",
		Constraints: generationConstraints{
			UseOnlyFromCatalog:  true,
			AvoidAllergens:      emptyIfNil(profile.Allergies),
			DietaryRestrictions: emptyIfNil(profile.DietaryRestrictions),
			KitchenEquipment:    emptyIfNil(profile.KitchenEquipment),
			PreferredUnits:      profile.PreferredUnits,
		},
		UserProfile: profile,
		Catalog:     catalog,
		OutputSchema: generationSchema{
			DailyRation: []rationItemSchema{numberItemSchema()},
		},
		Requirements: []string{
			"Exactly 5 items in daily_ration.",
			"Each item must specify name, recipe, proteins_g, carbohydrates_g, fats_g, fiber_g.",
			"Prefer existing meals; if needed, compose simple meals from products.",
			"Macros should be realistic and sum up consistent with goal and activity.",
			"Exclude any item violating allergies or dietary restrictions.",
		},
	}

	return []ChatMessage{
		{Role: "system", Content: generationSystemPrompt},
		{Role: "user", Content: mustMarshal(user)},
	}
}

type updateItemSchema struct {
	Position       string `json:"position"`
	Name           string `json:"name"`
	Recipe         string `json:"recipe"`
	ProteinsG      string `json:"proteins_g"`
	CarbohydratesG string `json:"carbohydrates_g"`
	FatsG          string `json:"fats_g"`
	FiberG         string `json:"fiber_g"`
}

type updateSchema struct {
	Replacements []updateItemSchema `json:"replacements"`
}

type updateRequest struct {
	Task             string              `json:"task"`
	Limits           MacroLimits         `json:"limits"`
	FixedItems       []RationItemPayload `json:"fixed_items"`
	ReplacePositions []int               `json:"replace_positions"`
	UserProfile      ProfilePayload      `json:"user_profile"`
	Catalog          CatalogPayload      `json:"catalog"`
	OutputSchema     updateSchema        `json:"output_schema"`
	Requirements     []string            `json:"requirements"`
}

const updateSystemPrompt = "You are a nutrition assistant. Update only the disliked meals in today's plan. " +
	"Keep all non-disliked meals unchanged. Use ONLY the provided catalog of meals/products. " +
	"Respect allergies, dietary restrictions, kitchen equipment, and macro limits. " +
	"Return valid JSON per schema."

// BuildUpdatePrompt assembles the replacement-only instruction set.
func BuildUpdatePrompt(profile ProfilePayload, catalog CatalogPayload, fixed []RationItemPayload, replacePositions []int, limits MacroLimits) []ChatMessage {
	if fixed == nil {
		fixed = []RationItemPayload{}
	}
	if replacePositions == nil {
		replacePositions = []int{}
	}
	user := updateRequest{
		Task:             "Replace the disliked items only, keeping others unchanged.",
		Limits:           limits,
		FixedItems:       fixed,
		ReplacePositions: replacePositions,
		UserProfile:      profile,
		Catalog:          catalog,
		OutputSchema: updateSchema{
			Replacements: []updateItemSchema{{
				Position:       "number 1-5",
				Name:           "string",
				Recipe:         "string",
				ProteinsG:      "number",
				CarbohydratesG: "number",
				FatsG:          "number",
				FiberG:         "number",
			}},
		},
		Requirements: []string{
			"Do NOT modify fixed_items.",
			"Return one replacement per position in replace_positions.",
			"Sum of fixed_items + replacements must not exceed any macro limit.",
			"Prefer existing meals from catalog; compose from products if needed.",
			"Exclude any item violating allergies/dietary restrictions.",
		},
	}

	return []ChatMessage{
		{Role: "system", Content: updateSystemPrompt},
		{Role: "user", Content: mustMarshal(user)},
	}
}

func numberItemSchema() rationItemSchema {
	return rationItemSchema{
		Name:           "string",
		Recipe:         "string",
		ProteinsG:      "number",
		CarbohydratesG: "number",
		FatsG:          "number",
		FiberG:         "number",
	}
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

// mustMarshal only sees struct types defined above; a marshal failure would
// be a programming error, not input-dependent.
func mustMarshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

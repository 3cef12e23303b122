package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"backend/config"
	"backend/services"
)

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}

func main() {
	username := flag.String("username", "", "Username to load profile from DB")

	displayName := flag.String("display-name", "", "Display name override")
	gender := flag.String("gender", "", "male|female|prefer_not_to_say")
	age := flag.Int("age", 0, "Age in years")
	height := flag.Float64("height", 0, "Height in cm")
	weight := flag.Float64("weight", 0, "Weight in kg")
	goal := flag.String("goal", "", "lose_weight|maintain_weight|gain_weight")
	activityLevel := flag.String("activity-level", "", "low|medium|high")
	dietaryRestrictions := flag.String("dietary-restrictions", "", "Comma-separated list or 'none'")
	allergies := flag.String("allergies", "", "Comma-separated list of allergies")
	cookingSkill := flag.String("cooking-skill", "", "beginner|intermediate|advanced")
	kitchenEquipment := flag.String("kitchen-equipment", "", "Comma-separated list (e.g. oven,microwave)")
	preferredUnits := flag.String("preferred-units", "metric", "metric|imperial")

	maxProducts := flag.Int("max-products", services.DefaultMaxProducts, "Catalog product limit")
	maxMeals := flag.Int("max-meals", services.DefaultMaxMeals, "Catalog meal limit")
	model := flag.String("model", "", "Completion model (defaults to OPENAI_MODEL)")
	output := flag.String("output", "", "Path to write JSON output; defaults to stdout")
	flag.Parse()

	config.InitDB()
	cfg := config.LoadOpenAI()
	if *model == "" {
		*model = cfg.Model
	}
	client := services.NewCompletionClient(cfg)

	// Load the latest profile when a username is given; otherwise, or when
	// none exists, fall back to flag values over baseline defaults so the
	// workflow never blocks on a missing profile.
	var profile services.ProfilePayload
	loaded := false
	if *username != "" {
		snapshot, err := services.NewIntakeService(config.DB).Snapshot(*username)
		if err == nil {
			profile = *snapshot
			loaded = true
		} else if !errors.Is(err, services.ErrProfileNotFound) {
			log.Fatalf("load profile: %v", err)
		}
	}
	if !loaded {
		profile = services.DefaultProfile(*username)
		if *displayName != "" {
			profile.DisplayName = *displayName
		}
		if *gender != "" {
			profile.Gender = *gender
		}
		if *age != 0 {
			profile.Age = *age
		}
		if *height != 0 {
			profile.HeightCm = *height
		}
		if *weight != 0 {
			profile.WeightKg = *weight
		}
		if *goal != "" {
			profile.Goal = *goal
		}
		if *activityLevel != "" {
			profile.ActivityLevel = *activityLevel
		}
		if dr := splitList(*dietaryRestrictions); len(dr) > 0 && !(len(dr) == 1 && dr[0] == "none") {
			profile.DietaryRestrictions = dr
		}
		if a := splitList(*allergies); len(a) > 0 {
			profile.Allergies = a
		}
		if *cookingSkill != "" {
			profile.CookingSkill = *cookingSkill
		}
		if ke := splitList(*kitchenEquipment); len(ke) > 0 {
			profile.KitchenEquipment = ke
		}
		profile.PreferredUnits = *preferredUnits
	}

	svc := services.NewRationService(config.DB, client, nil)
	result, err := svc.Generate(services.GenerateOptions{
		Username:    *username,
		Profile:     &profile,
		MaxProducts: *maxProducts,
		MaxMeals:    *maxMeals,
		Model:       *model,
	})
	if err != nil {
		log.Fatalf("generate ration: %v", err)
	}

	if err := writeJSON(*output, result.Data); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"backend/config"
	"backend/services"
)

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
	username := flag.String("username", "", "Username to load plan and profile (required)")
	planID := flag.Uint("plan-id", 0, "Specific plan id to update; defaults to latest today")
	todayOnly := flag.Bool("today-only", true, "Restrict to plans created today")

	caloriesLimit := flag.Float64("calories-limit", 0, "Calorie ceiling; estimated when limits are incomplete")
	proteinsLimit := flag.Float64("proteins-limit-g", 0, "Protein ceiling in grams")
	carbsLimit := flag.Float64("carbohydrates-limit-g", 0, "Carbohydrate ceiling in grams")
	fatsLimit := flag.Float64("fats-limit-g", 0, "Fat ceiling in grams")

	maxProducts := flag.Int("max-products", services.DefaultMaxProducts, "Catalog product limit")
	maxMeals := flag.Int("max-meals", services.DefaultMaxMealsUpdate, "Catalog meal limit")
	model := flag.String("model", "", "Completion model (defaults to OPENAI_MODEL)")
	save := flag.Bool("save", true, "Persist a new updated plan")
	output := flag.String("output", "", "Path to write JSON output; defaults to stdout")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "--username is required")
		flag.Usage()
		os.Exit(2)
	}

	config.InitDB()
	cfg := config.LoadOpenAI()
	if *model == "" {
		*model = cfg.Model
	}
	client := services.NewCompletionClient(cfg)

	opts := services.UpdateOptions{
		Username:    *username,
		PlanID:      uint(*planID),
		TodayOnly:   *todayOnly,
		MaxProducts: *maxProducts,
		MaxMeals:    *maxMeals,
		Model:       *model,
		Save:        *save,
	}
	if *caloriesLimit > 0 && *proteinsLimit > 0 && *carbsLimit > 0 && *fatsLimit > 0 {
		opts.Limits = &services.MacroLimits{
			CaloriesLimit:       *caloriesLimit,
			ProteinsLimitG:      *proteinsLimit,
			CarbohydratesLimitG: *carbsLimit,
			FatsLimitG:          *fatsLimit,
		}
	}

	svc := services.NewRationUpdateService(config.DB, client, nil)
	result, err := svc.Update(opts)
	if err != nil {
		log.Fatalf("update ration: %v", err)
	}

	if err := writeJSON(*output, result.Data); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

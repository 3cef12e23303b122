package main

import (
	"backend/config"
	"backend/routes"
	"backend/services"
)

func main() {
	config.InitDB()

	client := services.NewCompletionClient(config.LoadOpenAI())
	hub := services.NewRealtimeHub()
	alerts := services.NewAlertService(config.DB, hub)

	targetSvc := services.NewTargetService(config.DB, client, alerts)
	worker := services.NewTargetWorker(targetSvc, hub, 100)
	worker.Start()

	r := routes.SetupRouter(routes.Deps{
		Hub:    hub,
		Worker: worker,
		Gen:    services.NewRationService(config.DB, client, alerts),
		Upd:    services.NewRationUpdateService(config.DB, client, alerts),
	})
	r.Run(":8080")
}

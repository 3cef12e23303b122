package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Hub    *services.RealtimeHub
	Worker *services.TargetWorker
	Gen    *services.RationService
	Upd    *services.RationUpdateService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	intakeCtl := controllers.NewIntakeController(deps.Worker)
	rationCtl := controllers.NewRationController(deps.Gen, deps.Upd)
	realtimeCtl := controllers.NewRealtimeController(deps.Hub)

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/intake", intakeCtl.SubmitIntake)
		api.GET("/profile/:username", controllers.GetProfile)

		api.POST("/products", controllers.CreateProduct)
		api.GET("/products", controllers.ListProducts)
		api.POST("/meals", controllers.CreateMeal)
		api.GET("/meals", controllers.ListMeals)

		api.POST("/meals/:id/favorite", controllers.FavoriteMeal)
		api.POST("/meals/:id/reaction", controllers.ReactToMeal)
		api.POST("/products/:id/favorite", controllers.FavoriteProduct)
		api.POST("/products/:id/reaction", controllers.ReactToProduct)

		api.POST("/profile/:username/ration/generate", rationCtl.GenerateRation)
		api.POST("/profile/:username/ration/update", rationCtl.UpdateRation)
		api.GET("/profile/:username/plans/latest", controllers.LatestPlan)

		api.GET("/ws/events", realtimeCtl.EventsWS)
	}

	return r
}

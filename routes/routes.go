package routes

import (
	"log"

	"github.com/flehn/flutter-edanos-sub001/config"
	"github.com/flehn/flutter-edanos-sub001/controllers"
	"github.com/flehn/flutter-edanos-sub001/middlewares"
	"github.com/flehn/flutter-edanos-sub001/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	repo := services.NewMealRepository(config.DB)
	gemini := services.NewGeminiService()
	hub := services.NewMealHub()
	store := services.NewSessionStore(repo)
	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Fatalf("Failed to init Rekognition client: %v", err)
	}

	mealCtl := controllers.NewMealController(repo, hub, gemini, rek)
	sessionCtl := controllers.NewSessionController(store, repo, hub)
	ingredientCtl := controllers.NewIngredientController(gemini)
	quickAddCtl := controllers.NewQuickAddController(repo)
	uploadCtl := controllers.NewImageUploadController(repo)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/ingredients/search", ingredientCtl.Search)

		api.POST("/meals/recognize", mealCtl.Recognize)
		api.GET("/meals", mealCtl.List)
		api.POST("/meals", mealCtl.Create)
		api.GET("/meals/:id", mealCtl.Get)
		api.PUT("/meals/:id", mealCtl.Update)
		api.DELETE("/meals/:id", mealCtl.Delete)
		api.POST("/meals/:id/image", uploadCtl.UploadMealImage)

		api.POST("/quick-add", quickAddCtl.Create)
		api.GET("/quick-add", quickAddCtl.List)

		api.POST("/sessions", sessionCtl.Begin)
		api.GET("/sessions/:id", sessionCtl.Get)
		api.POST("/sessions/:id/save", sessionCtl.Save)
		api.DELETE("/sessions/:id", sessionCtl.Discard)
		api.POST("/sessions/:id/ingredients", sessionCtl.AddIngredients)
		api.PATCH("/sessions/:id/ingredients/:index", sessionCtl.UpdateAmount)
		api.DELETE("/sessions/:id/ingredients/:index", sessionCtl.RemoveIngredient)

		api.GET("/ws", realtimeCtl.MealEventsWS)
	}

	return r
}

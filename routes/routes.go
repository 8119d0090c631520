package routes

import (
	"github.com/achmadzano/ai-personal-nutritionist/controllers"
	"github.com/achmadzano/ai-personal-nutritionist/middlewares"
	"github.com/achmadzano/ai-personal-nutritionist/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	analyzer := services.NewAnalyzerService()
	hub := services.NewProgressHub()

	mealCtl := controllers.NewMealController(analyzer, hub)
	evalCtl := controllers.NewEvaluationController(analyzer)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("/analyze", mealCtl.AnalyzeMealPhoto)
		meals.POST("", mealCtl.SaveMeal)
		meals.GET("", mealCtl.ListMeals)
		meals.GET("/recent", mealCtl.RecentMeals)
	}

	evaluation := r.Group("/evaluation")
	evaluation.Use(middlewares.AuthMiddleware())
	{
		evaluation.GET("", evalCtl.GetEvaluation)
		evaluation.GET("/advice", evalCtl.GetDailyAdvice)
	}

	history := r.Group("/history")
	history.Use(middlewares.AuthMiddleware())
	{
		history.GET("", controllers.GetHistory)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/progress", rtCtl.ProgressWS)
	}

	return r
}

package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luislong0/daily-diet-api/controllers"
	"github.com/luislong0/daily-diet-api/middlewares"
)

type Handlers struct {
	Users    *controllers.UserController
	Meals    *controllers.MealController
	Realtime *controllers.RealtimeController

	Logger *slog.Logger
	// JWTSecret protects the mutating routes when non-empty.
	JWTSecret []byte
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(h.Logger), middlewares.RequestLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public reads
	r.GET("/users", h.Users.ListUsers)
	r.GET("/user", h.Users.GetUser)
	r.GET("/meal", h.Meals.ListMeals)
	r.GET("/meal/info", h.Meals.GetMealInfo)
	if h.Realtime != nil {
		r.GET("/meal/events", h.Realtime.MealEventsWS)
	}

	// Writes
	write := r.Group("/")
	if len(h.JWTSecret) > 0 {
		write.Use(middlewares.AuthMiddleware(h.JWTSecret))
	}
	{
		write.POST("/user", h.Users.CreateUser)
		write.POST("/meal", h.Meals.CreateMeal)
		write.PUT("/meal", h.Meals.UpdateMeal)
		write.DELETE("/meal", h.Meals.DeleteMeal)
	}

	return r
}

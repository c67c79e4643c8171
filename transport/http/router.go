package http

import (
	"github.com/gin-gonic/gin"
	"github.com/layer-3/blackjack/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, gameService *service.GameService, checks ...HealthCheck) *gin.Engine {
	router := gin.Default()

	handlers := NewGameHandlers(authService, gameService, checks...)

	router.GET("/healthz", handlers.Health)

	api := router.Group("/api")
	{
		// single-endpoint protocol used by the browser client
		api.GET("", handlers.Status)
		api.POST("", handlers.Action)

		api.POST("/auth", handlers.Authenticate)
		api.GET("/stats", handlers.Stats)
	}

	game := api.Group("/game")
	game.Use(AuthMiddleware(authService))
	{
		game.POST("/hit", handlers.Hit)
		game.POST("/stand", handlers.Stand)
	}

	return router
}

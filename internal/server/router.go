package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens-backend/internal/handlers"
)

type RouterConfig struct {
	AnalysisHandler *handlers.AnalysisHandler
	RoleHandler     *handlers.RoleHandler
	// Throttle guards only the pipeline entry point.
	Throttle gin.HandlerFunc

	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/analyze-resume", cfg.Throttle, cfg.AnalysisHandler.AnalyzeResume)
		api.GET("/roles", cfg.RoleHandler.ListRoles)
	}

	return router
}

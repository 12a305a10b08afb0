package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careerlens/careerlens-backend/internal/cache"
	"github.com/careerlens/careerlens-backend/internal/db"
	"github.com/careerlens/careerlens-backend/internal/handlers"
	"github.com/careerlens/careerlens-backend/internal/middleware"
	"github.com/careerlens/careerlens-backend/internal/platform/adzuna"
	"github.com/careerlens/careerlens-backend/internal/platform/gemini"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/repos"
	"github.com/careerlens/careerlens-backend/internal/server"
	"github.com/careerlens/careerlens-backend/internal/services"
)

type App struct {
	Log    *logger.Logger
	DB     *gorm.DB
	Router *gin.Engine
	Cfg    Config
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	dbService, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := dbService.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	store := wireStore(log, cfg)
	analysisCache := cache.NewAnalysisCache(log, store, cfg.AnalysisCacheTTL)
	throttle := cache.NewThrottle(log, store, cfg.ThrottleWindow)

	llm, err := gemini.NewClient(log, cfg.GeminiAPIKey, nil)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	jobSearch := adzuna.NewClient(log, cfg.AdzunaAppID, cfg.AdzunaAppKey)

	benchmarkRepo := repos.NewBenchmarkRepo(theDB, log)
	roleProfileRepo := repos.NewRoleProfileRepo(theDB, log)
	analysisRepo := repos.NewAnalysisRepo(theDB, log)

	benchmarkService := services.NewBenchmarkService(log, benchmarkRepo, llm)
	roleProfileService := services.NewRoleProfileService(log, roleProfileRepo, llm)
	fitService := services.NewFitService(log, llm)
	growthService := services.NewGrowthService(log, llm)
	dashboardService := services.NewDashboardService(log, llm)
	analysisService := services.NewAnalysisService(
		log,
		benchmarkService,
		roleProfileService,
		fitService,
		growthService,
		dashboardService,
		analysisRepo,
		jobSearch,
	)

	analysisHandler := handlers.NewAnalysisHandler(log, analysisService, analysisCache)
	roleHandler := handlers.NewRoleHandler(log, roleProfileService)

	router := server.NewRouter(server.RouterConfig{
		AnalysisHandler: analysisHandler,
		RoleHandler:     roleHandler,
		Throttle:        middleware.Throttle(log, throttle),
		CORSOrigins:     cfg.CORSOrigins,
	})

	return &App{
		Log:    log,
		DB:     theDB,
		Router: router,
		Cfg:    cfg,
	}, nil
}

// wireStore prefers Redis when configured and degrades to the in-process map
// otherwise. Cache and throttle state is expendable either way.
func wireStore(log *logger.Logger, cfg Config) cache.Store {
	if cfg.RedisAddr == "" {
		log.Info("no REDIS_ADDR configured, using in-process cache")
		return cache.NewMemoryStore()
	}
	store, err := cache.NewRedisStore(log, cfg.RedisAddr)
	if err != nil {
		log.Warn("redis unavailable, falling back to in-process cache", "error", err)
		return cache.NewMemoryStore()
	}
	return store
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a != nil && a.Log != nil {
		a.Log.Sync()
	}
}

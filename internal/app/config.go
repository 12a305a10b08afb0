package app

import (
	"strings"
	"time"

	"github.com/careerlens/careerlens-backend/internal/cache"
	"github.com/careerlens/careerlens-backend/internal/platform/envutil"
)

type Config struct {
	Port        string
	CORSOrigins []string

	GeminiAPIKey string
	AdzunaAppID  string
	AdzunaAppKey string

	RedisAddr        string
	AnalysisCacheTTL time.Duration
	ThrottleWindow   time.Duration
}

func LoadConfig() Config {
	origins := strings.Split(envutil.Str("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		Port:             envutil.Str("PORT", "8080"),
		CORSOrigins:      origins,
		GeminiAPIKey:     envutil.Str("GEMINI_API_KEY", ""),
		AdzunaAppID:      envutil.Str("ADZUNA_APP_ID", ""),
		AdzunaAppKey:     envutil.Str("ADZUNA_APP_KEY", ""),
		RedisAddr:        envutil.Str("REDIS_ADDR", ""),
		AnalysisCacheTTL: envutil.Seconds("ANALYSIS_CACHE_TTL", cache.DefaultAnalysisTTL),
		ThrottleWindow:   envutil.Seconds("THROTTLE_WINDOW", cache.DefaultThrottleWindow),
	}
}

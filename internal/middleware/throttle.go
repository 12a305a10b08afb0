package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens-backend/internal/cache"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

// Throttle rejects a client's second request within the limiter window before
// any processing happens. The client is identified by remote IP.
func Throttle(baseLog *logger.Logger, throttle *cache.Throttle) gin.HandlerFunc {
	log := baseLog.With("middleware", "Throttle")
	return func(c *gin.Context) {
		clientID := c.ClientIP()
		if !throttle.Allow(c.Request.Context(), clientID) {
			log.Warn("request throttled", "client_ip", clientID)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens-backend/internal/cache"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

func TestThrottleBlocksSecondRequestInWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	now := time.Now()
	store := cache.NewMemoryStore().WithClock(func() time.Time { return now })
	throttle := cache.NewThrottle(log, store, cache.DefaultThrottleWindow)

	router := gin.New()
	router.POST("/analyze", Throttle(log, throttle), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first request status=%d, want 200", code)
	}
	if code := do("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("second request status=%d, want 429", code)
	}
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("other client status=%d, want 200", code)
	}

	now = now.Add(cache.DefaultThrottleWindow + time.Millisecond)
	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("post-window request status=%d, want 200", code)
	}
}

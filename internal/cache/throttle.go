package cache

import (
	"context"
	"time"

	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

const DefaultThrottleWindow = 5 * time.Second

// Throttle is the advisory per-client limiter at the pipeline entry point:
// one request per client per window.
type Throttle struct {
	log    *logger.Logger
	store  Store
	window time.Duration
}

func NewThrottle(log *logger.Logger, store Store, window time.Duration) *Throttle {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &Throttle{
		log:    log.With("service", "Throttle"),
		store:  store,
		window: window,
	}
}

// Allow returns true at most once per window per client. Store errors fail
// open; the throttle is not a correctness mechanism.
func (t *Throttle) Allow(ctx context.Context, clientID string) bool {
	ok, err := t.store.SetNX(ctx, "rate_limit_"+clientID, "1", t.window)
	if err != nil {
		t.log.Warn("throttle check failed, allowing request", "client_id", clientID, "error", err)
		return true
	}
	return ok
}

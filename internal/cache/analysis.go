package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

const DefaultAnalysisTTL = 24 * time.Hour

// AnalysisCache is a content-addressed cache of full pipeline results. The key
// is a hash of the normalized resume text and role, so identical inputs map to
// the same entry no matter how they arrive.
type AnalysisCache struct {
	log   *logger.Logger
	store Store
	ttl   time.Duration
}

func NewAnalysisCache(log *logger.Logger, store Store, ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		ttl = DefaultAnalysisTTL
	}
	return &AnalysisCache{
		log:   log.With("service", "AnalysisCache"),
		store: store,
		ttl:   ttl,
	}
}

// Key normalizes by trimming and case-folding both inputs before hashing, so
// whitespace and letter case never fragment the cache.
func Key(resumeText, targetRole string) string {
	combined := strings.ToLower(strings.TrimSpace(resumeText)) + "_" + strings.ToLower(strings.TrimSpace(targetRole))
	sum := md5.Sum([]byte(combined))
	return "analysis_" + hex.EncodeToString(sum[:])
}

// Get returns the serialized result for the inputs, or ok=false on a miss.
// Store errors degrade to a miss; the cache is never load-bearing.
func (c *AnalysisCache) Get(ctx context.Context, resumeText, targetRole string) (string, bool) {
	val, ok, err := c.store.Get(ctx, Key(resumeText, targetRole))
	if err != nil {
		c.log.Warn("cache get failed", "error", err)
		return "", false
	}
	return val, ok
}

// Set overwrites any existing entry and restarts its TTL.
func (c *AnalysisCache) Set(ctx context.Context, resumeText, targetRole, serialized string) {
	if err := c.store.Set(ctx, Key(resumeText, targetRole), serialized, c.ttl); err != nil {
		c.log.Warn("cache set failed", "error", err)
	}
}

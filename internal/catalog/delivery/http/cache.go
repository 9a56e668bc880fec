package http

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/product-catalog/pkg/logger"
)

// CacheConfig holds response cache configuration
type CacheConfig struct {
	DefaultTTL      time.Duration
	CacheableStatus []int
	// PathPrefix limits caching to the routes under it. Operational
	// endpoints like /metrics and /health must never serve stale bodies.
	PathPrefix string
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:      time.Minute,
		CacheableStatus: []int{http.StatusOK},
		PathPrefix:      "/api/products",
	}
}

// cacheRecorder buffers the response so it can be stored after serving.
type cacheRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cr *cacheRecorder) WriteHeader(code int) {
	cr.statusCode = code
	cr.ResponseWriter.WriteHeader(code)
}

func (cr *cacheRecorder) Write(b []byte) (int, error) {
	cr.body.Write(b)
	return cr.ResponseWriter.Write(b)
}

// CacheMiddleware serves GET responses from Redis when present. Catalog
// reads tolerate the TTL of staleness; mutations bypass it entirely.
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if redisClient == nil || r.Method != http.MethodGet ||
				!strings.HasPrefix(r.URL.Path, config.PathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			cacheKey := generateCacheKey(r)

			cached, err := redisClient.Get(ctx, cacheKey).Bytes()
			if err == nil && len(cached) > 0 {
				logger.Logger.Debug().
					Str("path", r.URL.Path).
					Str("cache_key", cacheKey).
					Msg("Cache hit")

				w.Header().Set("X-Cache", "HIT")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(cached)
				return
			}

			recorder := &cacheRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			recorder.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(recorder, r)

			if !isStatusCacheable(recorder.statusCode, config.CacheableStatus) {
				return
			}

			if err := redisClient.Set(ctx, cacheKey, recorder.body.Bytes(), config.DefaultTTL).Err(); err != nil {
				logger.Logger.Warn().
					Err(err).
					Str("cache_key", cacheKey).
					Msg("Failed to cache response")
			}
		})
	}
}

func generateCacheKey(r *http.Request) string {
	sum := sha256.Sum256([]byte(r.Method + ":" + r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("catalog:response:%s", hex.EncodeToString(sum[:]))
}

func isStatusCacheable(status int, cacheable []int) bool {
	for _, s := range cacheable {
		if s == status {
			return true
		}
	}
	return false
}

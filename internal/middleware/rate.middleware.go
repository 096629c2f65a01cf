package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"country-service/pkg/response"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RateLimitOptions struct {
	Limit         int
	Window        time.Duration
	BlockDuration time.Duration
	KeyPrefix     string
}

// RateLimiter is a fixed-window limiter keyed by client IP and backed by Redis.
// When Redis cannot be reached requests are let through.
func RateLimiter(rdb redis.UniversalClient, opts RateLimitOptions, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := opts.KeyPrefix + ":ip:" + clientIP(r)
			blockKey := key + ":blocked"

			// Check if already blocked
			blocked, err := rdb.Get(ctx, blockKey).Result()
			if err == nil && blocked == "1" {
				ttl, _ := rdb.TTL(ctx, blockKey).Result()
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests. Try again in "+ttl.String())
				return
			}

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			// First request → set expiry
			if count == 1 {
				rdb.Expire(ctx, key, opts.Window)
			}

			if count > int64(opts.Limit) {
				rdb.Set(ctx, blockKey, "1", opts.BlockDuration)
				w.Header().Set("Retry-After", strconv.Itoa(int(opts.BlockDuration.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests. Blocked for "+opts.BlockDuration.String())
				return
			}

			ttl, _ := rdb.TTL(ctx, key).Result()
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(opts.Limit-int(count)))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr without the port.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

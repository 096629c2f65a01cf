package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryHook answers the handful of commands the limiter sends without a server.
type memoryHook struct {
	mu   sync.Mutex
	vals map[string]string
	ttls map[string]time.Duration
}

func newMemoryHook() *memoryHook {
	return &memoryHook{vals: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		args := cmd.Args()
		key := fmt.Sprint(args[1])
		switch c := cmd.(type) {
		case *redis.StringCmd: // GET
			v, ok := h.vals[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.IntCmd: // INCR
			var n int64
			fmt.Sscan(h.vals[key], &n)
			n++
			h.vals[key] = fmt.Sprint(n)
			c.SetVal(n)
		case *redis.BoolCmd: // EXPIRE key seconds
			h.ttls[key] = seconds(args[2])
			c.SetVal(true)
		case *redis.StatusCmd: // SET key val EX seconds
			h.vals[key] = fmt.Sprint(args[2])
			if len(args) >= 5 {
				h.ttls[key] = seconds(args[4])
			}
			c.SetVal("OK")
		case *redis.DurationCmd: // TTL
			c.SetVal(h.ttls[key])
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func seconds(v interface{}) time.Duration {
	var n int64
	fmt.Sscan(fmt.Sprint(v), &n)
	return time.Duration(n) * time.Second
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()
	rdb.AddHook(newMemoryHook())

	limited := RateLimiter(rdb, RateLimitOptions{
		Limit:         2,
		Window:        time.Minute,
		BlockDuration: 10 * time.Minute,
		KeyPrefix:     "test",
	}, zap.NewNop())(okHandler())

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/country-capital/Peru", nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec
	}

	first := do("10.0.0.1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	third := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "600", third.Header().Get("Retry-After"))

	// still blocked
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1").Code)
	// other clients are unaffected
	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	limited := RateLimiter(rdb, RateLimitOptions{Limit: 1, Window: time.Minute, BlockDuration: time.Minute, KeyPrefix: "test"}, zap.NewNop())(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "192.0.2.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

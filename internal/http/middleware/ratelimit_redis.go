package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leadgate/api/pkg/logging"
)

// RedisRateLimiter counts requests per IP in fixed windows shared across
// instances. On Redis failure it fails open so a cache outage cannot take the
// API down with it.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *logging.Logger
}

// NewRedisRateLimiter creates a limiter allowing limit requests per window per IP.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration, logger *logging.Logger) *RedisRateLimiter {
	if client == nil {
		panic("middleware: redis client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow returns true if the request from ip is within the current window's limit.
func (rl *RedisRateLimiter) Allow(ctx context.Context, ip string) bool {
	key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(rl.window.Seconds()))

	pipe := rl.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Error("redis rate limit check failed", "error", err)
		return true
	}

	return count.Val() <= int64(rl.limit)
}

// RedisRateLimit returns an HTTP middleware enforcing the shared limit with
// 429 Too Many Requests.
func RedisRateLimit(client *redis.Client, limit int, window time.Duration, logger *logging.Logger) func(http.Handler) http.Handler {
	limiter := NewRedisRateLimiter(client, limit, window, logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

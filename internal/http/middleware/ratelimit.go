package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter connects the shared Redis client used by RateLimit.
// With an empty addr, or when the ping fails, the limiter falls back to
// the in-process fixed window.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

type windowState struct {
	start time.Time
	count int
}

var (
	localMu      sync.Mutex
	localWindows = make(map[string]*windowState)
)

// RateLimit is a fixed-window per-IP limiter. It counts in Redis when a
// client is configured (key rl:<window>:<path>:<ip> via INCR/EXPIRE) and
// in process memory otherwise, so a single instance still gets limiting
// without Redis.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		// limit and window are part of the key so stacked limiters on the
		// same route count independently
		key := "rl:" + strconv.Itoa(maxRequests) + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.FullPath() + ":" + ip

		over := false
		if redisClient != nil {
			val, err := redisClient.Incr(c.Request.Context(), key).Result()
			if err != nil {
				// Redis down mid-flight: fail open rather than reject logins
				c.Header("X-RateLimit-Error", "redis-error")
				c.Next()
				return
			}
			if val == 1 {
				redisClient.Expire(c.Request.Context(), key, window)
			}
			over = val > int64(maxRequests)
		} else {
			over = localIncr(key, maxRequests, window)
		}

		if over {
			rlBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func localIncr(key string, maxRequests int, window time.Duration) bool {
	localMu.Lock()
	defer localMu.Unlock()

	now := time.Now()
	w, ok := localWindows[key]
	if !ok || now.Sub(w.start) > window {
		localWindows[key] = &windowState{start: now, count: 1}
		return false
	}
	w.count++
	return w.count > maxRequests
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Exercises the in-process window (no Redis configured).
func TestRateLimitLocal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	max := 2
	r := gin.New()
	r.GET("/test", RateLimit(max, time.Minute), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < max; i++ {
		res, err := http.Get(srv.URL + "/test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != 200 {
			t.Fatalf("expected 200 got %d", res.StatusCode)
		}
	}

	res, err := http.Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", res.StatusCode)
	}
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRateLimitRedisIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}

	InitRedisRateLimiter(addr, "", 0)
	if redisClient == nil {
		t.Skip("redis not reachable")
	}

	gin.SetMode(gin.TestMode)
	max := 2
	r := gin.New()
	r.GET("/redis-test", RateLimit(max, 2*time.Second), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < max; i++ {
		res, err := http.Get(srv.URL + "/redis-test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != 200 {
			t.Fatalf("expected 200 got %d", res.StatusCode)
		}
	}

	res, err := http.Get(srv.URL + "/redis-test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", res.StatusCode)
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"linguastory-backend/internal/config"
)

// RateLimitMiddleware throttles expensive generation endpoints per client,
// keyed by authenticated user when available and client IP otherwise.
func RateLimitMiddleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	perMinute := rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[key]; ok {
			return l
		}
		l := rate.NewLimiter(perMinute, cfg.Burst)
		limiters[key] = l
		return l
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		if username := c.GetString("username"); username != "" {
			key = username
		}
		if !limiterFor(key).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many generation requests, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/examhub/examhub/pkg/logger"
	redisclient "github.com/examhub/examhub/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RateLimiter struct {
	tokens     map[string][]time.Time
	maxRequest int
	duration   time.Duration
	mu         sync.Mutex
}

func NewRateLimiter(maxRequest int, duration time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	for ip, tokens := range rl.tokens {
		var valid []time.Time
		for _, t := range tokens {
			if now.Sub(t) <= rl.duration {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.tokens[ip] = valid
		} else {
			delete(rl.tokens, ip)
		}
	}
}

// Allow records a request for the ip and reports whether it is within the
// limit, along with the remaining budget.
func (rl *RateLimiter) Allow(ip string, now time.Time) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanup(now)

	tokens := rl.tokens[ip]
	if len(tokens) >= rl.maxRequest {
		return false, 0
	}

	rl.tokens[ip] = append(tokens, now)
	return true, rl.maxRequest - len(tokens) - 1
}

// RateLimit bounds each client IP to maxRequest requests per duration using
// an in-process sliding window.
func RateLimit(maxRequest int, duration time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(maxRequest, duration)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		allowed, remaining := limiter.Allow(ip, now)
		if !allowed {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("max_requests", maxRequest),
				zap.Duration("duration", duration),
			)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": duration.Seconds(),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", now.Add(duration).Unix()))

		c.Next()
	}
}

// RateLimitWithRedis bounds each client IP using a shared Redis counter, so
// the limit holds across instances. On Redis failure the request is let
// through; throttling is best effort.
func RateLimitWithRedis(client *redisclient.Client, maxRequest int, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("ratelimit:%s", ip)

		count, err := client.IncrWithTTL(c.Request.Context(), key, duration)
		if err != nil {
			logger.GetLogger().Error("Rate limit counter unavailable",
				zap.String("client_ip", ip),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(maxRequest) {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int64("current_requests", count),
				zap.Int("max_requests", maxRequest),
			)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": duration.Seconds(),
			})
			c.Abort()
			return
		}

		remaining := int64(maxRequest) - count
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(duration).Unix()))

		c.Next()
	}
}

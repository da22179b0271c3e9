package middleware

import (
	"cardvault/services/redis"
	redis_utils "cardvault/services/redis/utils"
	"cardvault/utils"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig describes one fixed-window limiter. Scope separates the
// counters of different route classes (reads vs writes) so a burst of one
// does not starve the other.
type RateLimitConfig struct {
	Scope  string
	Max    int64
	Window time.Duration
}

// ReadLimit is the default limiter for query endpoints.
func ReadLimit() RateLimitConfig {
	return RateLimitConfig{Scope: "read", Max: 60, Window: time.Minute}
}

// WriteLimit is the default limiter for mutating endpoints.
func WriteLimit() RateLimitConfig {
	return RateLimitConfig{Scope: "write", Max: 30, Window: time.Minute}
}

// rateLimitCaller identifies the caller: by user id when authenticated,
// by network address otherwise.
func rateLimitCaller(c *gin.Context) string {
	if id, ok := UserID(c); ok {
		return fmt.Sprintf("user:%s", id)
	}
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

// RateLimit throttles callers on a fixed window backed by Redis. When the
// counter store is unreachable the request is let through; throttling is
// protection, not a correctness requirement.
func RateLimit(rc *redis.RedisClient, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := redis_utils.FormatRateLimitKey(cfg.Scope, rateLimitCaller(c))

		count, ttl, err := rc.IncrWindow(key, cfg.Window)
		if err != nil {
			log.Printf("Rate limit store unavailable, allowing request: %v", err)
			c.Next()
			return
		}
		if ttl <= 0 {
			ttl = cfg.Window
		}

		remaining := cfg.Max - count
		if remaining < 0 {
			remaining = 0
		}
		reset := time.Now().Add(ttl).Unix()

		c.Header("X-RateLimit-Limit", strconv.FormatInt(cfg.Max, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > cfg.Max {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   utils.MsgTooManyRequests,
			})
			return
		}

		c.Next()
	}
}

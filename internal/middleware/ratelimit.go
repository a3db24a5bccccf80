package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RateLimit enforces a fixed window per client IP backed by Redis, the
// counterpart of the original express-rate-limit setup (100 requests
// per 15 minutes). Without Redis, or when Redis errors, requests pass:
// availability of the booking API wins over throttling accuracy.
func RateLimit(rdb *redis.Client, max int, window time.Duration) gin.HandlerFunc {
	if rdb == nil || max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		windowID := time.Now().Unix() / int64(window.Seconds())
		key := fmt.Sprintf("rl:%s:%d", c.ClientIP(), windowID)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			zap.L().Debug("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many requests from this IP, please try again later.",
			})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"categories-api/pkg/apperror"
	"categories-api/pkg/response"
)

type RateLimiter struct {
	rdb    *redis.Client
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, window: window}
}

// LimitWrites allows one mutating request per client IP per window. With no
// redis configured the limiter is a no-op.
func (rl *RateLimiter) LimitWrites() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:ip:%s:write", c.ClientIP())

		wasSet, err := rl.rdb.SetNX(c.Request.Context(), key, "locked", rl.window).Result()
		if err != nil {
			// redis being down must not take the API down with it
			c.Next()
			return
		}

		if !wasSet {
			ttl, _ := rl.rdb.TTL(c.Request.Context(), key).Result()
			c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			response.ResponseError(c, apperror.ErrRateLimitExceeded)
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// AttemptCounter is the slice of the cache the limiter needs.
type AttemptCounter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, keys ...string) error
}

// LoginRateLimit blocks a client IP after LoginMaxAttempts failed logins
// until LoginCooldown has passed since the last failure. Counter errors let
// the request through.
func LoginRateLimit(counter AttemptCounter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "login_attempts:" + c.ClientIP()

		attempts, err := counter.Count(ctx, key)
		if err != nil {
			log.Warn("login limiter unavailable", zap.Error(err))
		}
		if attempts >= LoginMaxAttempts {
			c.Header("Retry-After", fmt.Sprintf("%d", int(LoginCooldown.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": fmt.Sprintf("Too many failed login attempts. Try again in %d minutes", int(LoginCooldown.Minutes())),
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			if _, err := counter.Incr(ctx, key, LoginCooldown); err != nil {
				log.Warn("login limiter unavailable", zap.Error(err))
			}
		case http.StatusOK:
			_ = counter.Delete(ctx, key)
		}
	}
}

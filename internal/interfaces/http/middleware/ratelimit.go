package middleware

import (
	"net/http"
	"strconv"

	"github.com/fintrack/backend/internal/infrastructure/cache"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Rate-limit endpoint classes. Each class gets its own counter window so a
// burst of chat turns cannot starve ordinary CRUD traffic.
const (
	RateLimitClassGeneral = "general"
	RateLimitClassAI      = "ai"
	RateLimitClassAdmin   = "admin"
)

// RateLimit enforces a fixed-window limit per identity for one endpoint
// class. Authenticated requests are keyed by user ID, anonymous ones by
// client IP. Counter-store failures fail open.
func RateLimit(store cache.CounterStore, class string, cfg config.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := class + ":" + identityKey(c)

		count, resetAt, err := store.Incr(c.Request.Context(), key, cfg.Window)
		if err != nil {
			logger.L(c.Request.Context()).Warn("rate limit store unavailable, allowing request",
				zap.String("class", class),
				zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(cfg.Requests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > int64(cfg.Requests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse("Too many requests. Please try again later."))
			return
		}

		c.Next()
	}
}

// identityKey prefers the authenticated user over the client IP so limits
// follow the account across devices
func identityKey(c *gin.Context) string {
	if userID, err := GetAuthUserID(c); err == nil {
		return userID.String()
	}
	return c.ClientIP()
}

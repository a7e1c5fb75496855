package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/siscec-api/internal/handler"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
}

// RateLimiter is a single token bucket shared by all clients.
type RateLimiter struct {
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewRateLimiter(config RateLimiterConfig, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(config.Rate, config.Burst),
		log:     log.With("ratelimit"),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter.Allow() {
			c.Next()
			return
		}

		logger.FromContext(c.Request.Context(), rl.log).Warn(nil, "rate limit exceeded",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"limit", float64(rl.limiter.Limit()),
			"burst", rl.limiter.Burst(),
		)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, handler.NewErrorResponse("Demasiadas solicitudes"))
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/siscec-api/internal/handler"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

// Recovery turns a panic into a 500 in the legacy envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	fallback := log.With("recovery")

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.FromContext(c.Request.Context(), fallback).Zerolog().Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("client_ip", c.ClientIP()).
					Msg("Request panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					handler.NewErrorResponse(fmt.Sprintf("%s%v", handler.PrefixInternal, err)))
			}
		}()
		c.Next()
	}
}

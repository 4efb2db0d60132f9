package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery returns a gin middleware that recovers from panics, logs the panic
// value with its stack trace, and responds with a 500 {errorMessage} body.
// It replaces gin.Recovery() so panics end up in the structured log.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", err),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				c.Abort()
				c.JSON(http.StatusInternalServerError, gin.H{
					"errorMessage": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

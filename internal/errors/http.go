package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Err writes an error response on the gin context, resolving the status
// code from the typed error when available.
func Err(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}

	if e.Code >= http.StatusInternalServerError {
		log.Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}

	c.AbortWithStatusJSON(e.Code, gin.H{"error": e.Message})
}

// ErrorHandlerMiddleware converts errors collected on the context into a
// JSON response after the handler chain ran.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		Err(c, c.Errors.Last().Err)
	}
}

// RecoveryMiddleware turns panics into 500 responses instead of killing
// the connection.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("handler panicked")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

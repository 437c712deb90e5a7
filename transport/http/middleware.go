package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/service"
	"github.com/rs/zerolog"
)

const sessionKey = "ordauth.session"

// AuthMiddleware creates middleware that validates session tokens
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			abortWithError(c, core.ErrSessionNotFound)
			return
		}

		session, err := authService.ValidateSession(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(sessionKey, session)

		c.Next()
	}
}

func sessionFrom(c *gin.Context) (core.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return core.Session{}, false
	}
	session, ok := v.(core.Session)
	return session, ok
}

// RequestLogger logs one line per request, without the query string.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
			if len(c.Errors) > 0 {
				event = event.Err(c.Errors.Last().Err)
			}
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Int("body_size", c.Writer.Size()).
			Msg("Request processed")
	}
}

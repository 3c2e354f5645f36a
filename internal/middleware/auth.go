package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jigardalal/engageNinja-sub004/internal/session"
	"github.com/jigardalal/engageNinja-sub004/pkg/logger"
	"github.com/jigardalal/engageNinja-sub004/prometheus"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the bearer token to a live session. The lookup
// slides the session's idle window; a missing, invalid or expired token is
// answered 401 before the handler runs.
func SessionMiddleware(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			s, err := sessions.Get(parts[1])
			if err != nil {
				log.Warn("Invalid or expired session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_session")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
			}

			c.Set(sessionContextKey, s)
			return next(c)
		}
	}
}

// SessionFromContext returns the session stored by SessionMiddleware, or nil
// on routes that did not pass through it.
func SessionFromContext(c echo.Context) *session.Session {
	s, ok := c.Get(sessionContextKey).(*session.Session)
	if !ok {
		return nil
	}
	return s
}

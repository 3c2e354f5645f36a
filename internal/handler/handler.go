// Package handler exposes the HTTP surface. Handlers bind input, consult the
// authorization guard, delegate to services and map domain errors to
// statuses; they hold no business rules of their own.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jigardalal/engageNinja-sub004/internal/audit"
	"github.com/jigardalal/engageNinja-sub004/internal/middleware"
	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/internal/repository"
	"github.com/jigardalal/engageNinja-sub004/internal/session"
	"github.com/jigardalal/engageNinja-sub004/internal/tenantsvc"
)

// Handler carries the wired services and repositories for all routes.
type Handler struct {
	Sessions    *session.Manager
	Users       repository.UserRepository
	Tenants     repository.TenantRepository
	Memberships repository.MembershipRepository
	Messages    repository.MessageRepository
	Settings    repository.SettingRepository
	TenantSvc   *tenantsvc.Service
	Recorder    *audit.Recorder
	LoginLimit  *middleware.RateLimiter
}

// respondError translates the domain error taxonomy into HTTP statuses.
// Unauthenticated and Forbidden stay distinguishable; audit write failures
// and unknown errors are server errors.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, model.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, model.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	case errors.Is(err, model.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})
	case errors.Is(err, model.ErrAuditWrite):
		log.Error("Audit write failed for privileged action", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "audit write failed"})
	default:
		log.Error("Internal error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// currentSession returns the session placed by the session middleware.
func currentSession(c echo.Context) *session.Session {
	return middleware.SessionFromContext(c)
}

// tenantsPayload shapes the membership snapshot for responses.
func tenantsPayload(v session.View) []echo.Map {
	out := make([]echo.Map, 0, len(v.Memberships))
	for _, m := range v.Memberships {
		out = append(out, echo.Map{
			"id":        m.ID,
			"tenant_id": m.TenantID,
			"role":      m.Role,
		})
	}
	return out
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jigardalal/engageNinja-sub004/internal/audit"
	"github.com/jigardalal/engageNinja-sub004/internal/authz"
	"github.com/jigardalal/engageNinja-sub004/pkg/logger"
	"github.com/jigardalal/engageNinja-sub004/prometheus"
)

// requirePlatformAdmin runs the guard for platform-scope routes and returns
// the caller's view on success.
func (h *Handler) requirePlatformAdmin(c echo.Context) (uint, error) {
	s := currentSession(c)
	if s == nil {
		return 0, authz.Require(nil, authz.ScopePlatformAdmin, 0)
	}
	v := s.View()
	if err := authz.Require(&v, authz.ScopePlatformAdmin, 0); err != nil {
		return 0, err
	}
	return v.UserID, nil
}

// CreateTenant handles explicit tenant creation by a platform admin.
func (h *Handler) CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("create")

	actorID, err := h.requirePlatformAdmin(c)
	if err != nil {
		prometheus.RecordAuthError("unauthorized_tenant_creation")
		return respondError(c, log, err)
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		prometheus.RecordAuthError("incomplete_tenant_creation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	tenant, err := h.TenantSvc.CreateTenant(c.Request().Context(), req.Name, actorID)
	if err != nil {
		log.Error("Failed to create tenant", zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Tenant created",
		zap.String("name", tenant.Name),
		zap.Uint("id", tenant.ID),
		zap.Uint("actor_user_id", actorID))
	return c.JSON(http.StatusCreated, echo.Map{"tenant_id": tenant.ID})
}

// ListTenants returns every workspace, for the platform console.
func (h *Handler) ListTenants(c echo.Context) error {
	log := logger.FromContext(c)

	if _, err := h.requirePlatformAdmin(c); err != nil {
		return respondError(c, log, err)
	}

	tenants, err := h.Tenants.List(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tenants": tenants})
}

// UpdateTenantStatus suspends or reactivates a tenant.
func (h *Handler) UpdateTenantStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("update")

	actorID, err := h.requirePlatformAdmin(c)
	if err != nil {
		return respondError(c, log, err)
	}

	tenantID, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tenant, err := h.TenantSvc.UpdateStatus(c.Request().Context(), tenantID, req.Status, actorID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// SyncGlobalTags reconciles a tenant's tags against the registry.
func (h *Handler) SyncGlobalTags(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("sync_tags")

	actorID, err := h.requirePlatformAdmin(c)
	if err != nil {
		prometheus.RecordAuthError("unauthorized_tag_sync")
		return respondError(c, log, err)
	}

	tenantID, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant ID"})
	}

	added, err := h.TenantSvc.SyncGlobalTags(c.Request().Context(), tenantID, actorID)
	if err != nil {
		log.Error("Tag sync failed", zap.Uint("tenant_id", tenantID), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Global tags synchronized",
		zap.Uint("tenant_id", tenantID),
		zap.Int("added", added))
	return c.JSON(http.StatusOK, echo.Map{"added": added})
}

// CreateGlobalTag adds a registry tag.
func (h *Handler) CreateGlobalTag(c echo.Context) error {
	log := logger.FromContext(c)

	actorID, err := h.requirePlatformAdmin(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	tag, err := h.TenantSvc.CreateGlobalTag(c.Request().Context(), req.Name, actorID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// UpdateGlobalTagStatus archives or reactivates a registry tag.
func (h *Handler) UpdateGlobalTagStatus(c echo.Context) error {
	log := logger.FromContext(c)

	actorID, err := h.requirePlatformAdmin(c)
	if err != nil {
		return respondError(c, log, err)
	}

	tagID, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tag ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tag, err := h.TenantSvc.UpdateGlobalTagStatus(c.Request().Context(), tagID, req.Status, actorID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, tag)
}

// ListGlobalTags returns the registry, archived tags included.
func (h *Handler) ListGlobalTags(c echo.Context) error {
	log := logger.FromContext(c)

	if _, err := h.requirePlatformAdmin(c); err != nil {
		return respondError(c, log, err)
	}

	tags, err := h.TenantSvc.ListGlobalTags(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}

// AuditLogs serves filtered, paginated audit queries, newest-first.
func (h *Handler) AuditLogs(c echo.Context) error {
	log := logger.FromContext(c)

	if _, err := h.requirePlatformAdmin(c); err != nil {
		prometheus.RecordAuthError("unauthorized_audit_read")
		return respondError(c, log, err)
	}

	filter := audit.Filter{Action: c.QueryParam("action")}

	if raw := c.QueryParam("actor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid actor_id"})
		}
		actor := uint(id)
		filter.ActorUserID = &actor
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from timestamp"})
		}
		filter.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to timestamp"})
		}
		filter.To = &to
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		filter.Limit = limit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offset"})
		}
		filter.Offset = offset
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	logs, err := h.Recorder.Query(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}

// Stats serves the fixed cross-tenant counters.
func (h *Handler) Stats(c echo.Context) error {
	log := logger.FromContext(c)

	if _, err := h.requirePlatformAdmin(c); err != nil {
		return respondError(c, log, err)
	}

	ctx := c.Request().Context()
	defer prometheus.TrackDBOperation("query")(time.Now())

	tenants, err := h.Tenants.Count(ctx)
	if err != nil {
		return respondError(c, log, err)
	}
	users, err := h.Users.Count(ctx)
	if err != nil {
		return respondError(c, log, err)
	}
	memberships, err := h.Memberships.Count(ctx)
	if err != nil {
		return respondError(c, log, err)
	}
	messages, err := h.Messages.Count(ctx)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tenants":     tenants,
		"users":       users,
		"memberships": memberships,
		"messages":    messages,
	})
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jigardalal/engageNinja-sub004/internal/credential"
	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/pkg/logger"
	"github.com/jigardalal/engageNinja-sub004/prometheus"
)

// Register handles signup: it creates the user, provisions a personal
// workspace with an admin membership, and seeds the workspace with the
// currently active global tags.
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Company  string `json:"company,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	email := model.NormalizeEmail(req.Email)
	if email == "" || len(req.Password) < 8 {
		log.Error("Invalid registration data", zap.String("email", email))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and a password of at least 8 characters are required"})
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	if _, err := h.Users.GetByEmail(c.Request().Context(), email); err == nil {
		log.Error("User already exists", zap.String("email", email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashed, err := credential.Hash(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := &model.User{
		Email:    email,
		Password: hashed,
		Name:     req.Name,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return respondError(c, log, err)
	}

	workspace := req.Company
	if workspace == "" {
		workspace = email
	}
	tenant, err := h.TenantSvc.Provision(c.Request().Context(), workspace, user.ID)
	if err != nil {
		log.Error("Failed to provision workspace", zap.Error(err))
		prometheus.RecordAuthError("tenant_provision_failed")
		return respondError(c, log, err)
	}

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.Uint("tenant_id", tenant.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
		"tenant_id": tenant.ID,
	})
}

// Login verifies credentials and issues a session. Users with exactly one
// membership land with that tenant active; everyone else selects one with
// the switch-tenant call.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	email := model.NormalizeEmail(req.Email)
	limitKey := email
	if limitKey == "" {
		limitKey = c.RealIP()
	}
	if !h.LoginLimit.Allow(limitKey) {
		log.Warn("Login rate limit exceeded", zap.String("email", email))
		prometheus.RecordAuthError("rate_limited")
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many login attempts"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		log.Error("User not found", zap.String("email", email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if user.Disabled {
		log.Warn("Login attempt for disabled user", zap.String("email", email))
		prometheus.RecordAuthError("user_disabled")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if !credential.Verify(user.Password, req.Password) {
		log.Error("Invalid password", zap.String("email", email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	s, err := h.Sessions.Create(c.Request().Context(), user)
	if err != nil {
		log.Error("Failed to create session", zap.Error(err))
		prometheus.RecordAuthError("session_creation_failed")
		return respondError(c, log, err)
	}

	v := s.View()
	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Bool("platform_admin", v.IsPlatformAdmin),
		zap.Int("memberships", len(v.Memberships)))

	return c.JSON(http.StatusOK, echo.Map{
		"token": s.Token(),
		"user": echo.Map{
			"id":                user.ID,
			"email":             user.Email,
			"name":              user.Name,
			"is_platform_admin": user.IsPlatformAdmin,
		},
		"tenants":          tenantsPayload(v),
		"active_tenant_id": v.ActiveTenantID,
	})
}

// Logout invalidates the session; the token is dead immediately.
func (h *Handler) Logout(c echo.Context) error {
	s := currentSession(c)
	if s == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	h.Sessions.Invalidate(s.Token())
	return c.NoContent(http.StatusNoContent)
}

// SwitchTenant points the session at another tenant. Members switch freely;
// platform admins may switch into any tenant and get an admin membership
// created on the way in, which is audited.
func (h *Handler) SwitchTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TenantSwitchCounter.Inc()

	s := currentSession(c)
	if s == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		TenantID uint `json:"tenant_id"`
	}
	if err := c.Bind(&req); err != nil || req.TenantID == 0 {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	v, created, err := h.Sessions.SelectTenant(c.Request().Context(), s, req.TenantID)
	if err != nil {
		log.Warn("Tenant switch rejected",
			zap.Uint("tenant_id", req.TenantID),
			zap.Error(err))
		prometheus.RecordAuthError("tenant_access_denied")
		return respondError(c, log, err)
	}

	if created {
		if err := h.Recorder.Record(c.Request().Context(), v.UserID, "membership.auto_create",
			fmt.Sprintf("tenant:%d", req.TenantID),
			echo.Map{"role": model.RoleAdmin}); err != nil {
			return respondError(c, log, err)
		}
	}

	log.Info("User switched tenant",
		zap.Uint("user_id", v.UserID),
		zap.Uint("tenant_id", req.TenantID),
		zap.Bool("membership_created", created))

	return c.JSON(http.StatusOK, echo.Map{
		"tenants":          tenantsPayload(v),
		"active_tenant_id": v.ActiveTenantID,
	})
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(c echo.Context) error {
	log := logger.FromContext(c)

	s := currentSession(c)
	if s == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	user, err := h.Users.GetByID(c.Request().Context(), s.View().UserID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile patches name, phone and timezone.
func (h *Handler) UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)

	s := currentSession(c)
	if s == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Timezone *string `json:"timezone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.Users.GetByID(c.Request().Context(), s.View().UserID)
	if err != nil {
		return respondError(c, log, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.Users.Update(c.Request().Context(), user); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Profile updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}

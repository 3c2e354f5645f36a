package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jigardalal/engageNinja-sub004/internal/audit"
	"github.com/jigardalal/engageNinja-sub004/internal/handler"
	"github.com/jigardalal/engageNinja-sub004/internal/middleware"
	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/internal/repository"
	"github.com/jigardalal/engageNinja-sub004/internal/session"
	"github.com/jigardalal/engageNinja-sub004/internal/tenantsvc"
	"github.com/jigardalal/engageNinja-sub004/pkg/config"
	"github.com/jigardalal/engageNinja-sub004/pkg/database"
	"github.com/jigardalal/engageNinja-sub004/pkg/logger"
	"github.com/jigardalal/engageNinja-sub004/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting engageNinja API...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
		&model.User{},
		&model.Tenant{},
		&model.Membership{},
		&model.GlobalTag{},
		&model.TenantTag{},
		&model.Message{},
		&model.AuditLog{},
		&model.Setting{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Repositories
	users := repository.NewGormUserRepository(db)
	tenants := repository.NewGormTenantRepository(db)
	memberships := repository.NewGormMembershipRepository(db)
	globalTags := repository.NewGormGlobalTagRepository(db)
	tenantTags := repository.NewGormTenantTagRepository(db)
	auditLogs := repository.NewGormAuditLogRepository(db)
	messages := repository.NewGormMessageRepository(db)
	settings := repository.NewGormSettingRepository(db)

	// Services
	recorder := audit.NewRecorder(auditLogs)
	sessions := session.NewManager(memberships, tenants, cfg.Session.IdleTimeout)
	tenantService := tenantsvc.NewService(tenants, memberships, globalTags, tenantTags, recorder)
	loginLimit := middleware.NewRateLimiter(cfg.LoginRate.Rate, cfg.LoginRate.Burst)
	defer loginLimit.Stop()

	h := &handler.Handler{
		Sessions:    sessions,
		Users:       users,
		Tenants:     tenants,
		Memberships: memberships,
		Messages:    messages,
		Settings:    settings,
		TenantSvc:   tenantService,
		Recorder:    recorder,
		LoginLimit:  loginLimit,
	}

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	// Session-bound auth routes
	authSession := e.Group("/auth")
	authSession.Use(middleware.SessionMiddleware(sessions))
	authSession.POST("/logout", h.Logout)
	authSession.POST("/switch-tenant", h.SwitchTenant)

	// Profile
	me := e.Group("/me")
	me.Use(middleware.SessionMiddleware(sessions))
	me.GET("", h.GetProfile)
	me.PATCH("", h.UpdateProfile)

	// Platform admin surface - the guard inside each handler enforces scope
	admin := e.Group("/admin")
	admin.Use(middleware.SessionMiddleware(sessions))
	admin.POST("/tenants", h.CreateTenant)
	admin.GET("/tenants", h.ListTenants)
	admin.PATCH("/tenants/:id", h.UpdateTenantStatus)
	admin.POST("/tenants/:id/sync-global-tags", h.SyncGlobalTags)
	admin.POST("/global-tags", h.CreateGlobalTag)
	admin.GET("/global-tags", h.ListGlobalTags)
	admin.PATCH("/global-tags/:id", h.UpdateGlobalTagStatus)
	admin.GET("/config", h.ListConfig)
	admin.PATCH("/config", h.UpdateConfig)
	admin.GET("/audit-logs", h.AuditLogs)
	admin.GET("/stats", h.Stats)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

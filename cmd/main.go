package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"nyumbani/internal/accessctrl"
	"nyumbani/internal/auth"
	"nyumbani/internal/caching"
	"nyumbani/internal/config"
	"nyumbani/internal/finance"
	"nyumbani/internal/handlers"
	"nyumbani/internal/insights"
	"nyumbani/internal/jobs"
	applog "nyumbani/internal/log"
	"nyumbani/internal/middleware"
	"nyumbani/internal/models"
	"nyumbani/internal/notify"
	"nyumbani/internal/repositories"
	"nyumbani/internal/services"
	"nyumbani/internal/storage"
	"nyumbani/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := applog.New(cfg.Environment)

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)

	objectStore, err := storage.NewMinioStore(cfg.Storage.Endpoint, cfg.Storage.AccessKey,
		cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to object store")
	}
	if err := objectStore.EnsureBucket(ctx, cfg.Storage.Bucket); err != nil {
		logger.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("failed to ensure bucket")
	}

	verifier, err := auth.NewIdentityVerifier(cfg.Auth.JWKSURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize identity verifier")
	}
	defer verifier.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)
	propertyRepo := repositories.NewPropertyRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	landlordRepo := repositories.NewLandlordRepository(pool)
	maintenanceRepo := repositories.NewMaintenanceRepository(pool)
	activityLogRepo := repositories.NewActivityLogRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)

	feePolicy := finance.FeePolicy{Rate: cfg.Finance.ManagementFeeRate}

	// Services
	tokenSvc := auth.NewTokenService(cacheSvc, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, logger)
	profileSvc := services.NewProfileService(userRepo, cacheSvc, logger)
	tenantSvc := services.NewTenantService(tenantRepo, propertyRepo, cacheSvc, logger)
	propertySvc := services.NewPropertyService(propertyRepo, tenantRepo)
	paymentSvc := services.NewPaymentService(paymentRepo, tenantRepo, cacheSvc, feePolicy, logger)
	landlordSvc := services.NewLandlordService(landlordRepo, propertyRepo)
	maintenanceSvc := services.NewMaintenanceService(maintenanceRepo, tenantRepo)
	activitySvc := services.NewActivityLogService(activityLogRepo, logger)
	dashboardSvc := services.NewDashboardService(paymentRepo, tenantRepo, propertyRepo, cacheSvc, feePolicy, logger)
	documentSvc := services.NewDocumentService(documentRepo, objectStore, cfg.Storage.Bucket, logger)
	exportSvc := services.NewExportService(paymentRepo, tenantRepo, propertyRepo, landlordRepo, feePolicy)
	insightsClient := insights.NewClient(cfg.Insights.Endpoint, cfg.Insights.APIKey)
	notifier := notify.NewRelayNotifier(cfg.Mail.RelayURL, cfg.Mail.From, logger)

	// Background jobs
	scheduler, err := jobs.NewScheduler(tenantSvc, dashboardSvc, notifier, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create job scheduler")
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn().Err(err).Msg("scheduler shutdown failed")
		}
	}()

	// Handlers
	authHandlers := handlers.NewAuthHandlers(verifier, tokenSvc, profileSvc)
	profileHandlers := handlers.NewProfileHandlers(profileSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	propertyHandlers := handlers.NewPropertyHandlers(propertySvc, tenantSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc)
	landlordHandlers := handlers.NewLandlordHandlers(landlordSvc, propertySvc)
	maintenanceHandlers := handlers.NewMaintenanceHandlers(maintenanceSvc)
	portalHandlers := handlers.NewPortalHandlers(profileSvc, paymentSvc, maintenanceSvc, documentSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	documentHandlers := handlers.NewDocumentHandlers(documentSvc)
	activityHandlers := handlers.NewActivityLogHandlers(activitySvc)
	exportHandlers := handlers.NewExportHandlers(exportSvc)
	insightsHandlers := handlers.NewInsightsHandlers(insightsClient)

	auditMiddleware := middleware.NewAuditMiddleware(activitySvc)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints stay open.
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", handlers.ReadinessCheck(pool))

	v1 := e.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandlers.Login)
	authGroup.POST("/refresh", authHandlers.Refresh)
	authGroup.POST("/logout", authHandlers.Logout)

	protected := v1.Group("")
	protected.Use(middleware.SessionJWT(cfg.Auth.JWTSecret))

	protected.GET("/me", authHandlers.Me)

	// Tenant self-service surface. Portal handlers resolve the tenant
	// from the session profile; they never accept a tenant id from the
	// client.
	tenantPortal := protected.Group("/tenant", middleware.RequireSurface(accessctrl.RouteTenant))
	tenantPortal.GET("/payments", portalHandlers.ListMyPayments)
	tenantPortal.GET("/maintenance", portalHandlers.ListMyMaintenance)
	tenantPortal.POST("/maintenance", portalHandlers.CreateMaintenanceRequest,
		auditMiddleware.Audit("maintenance_request"))
	tenantPortal.GET("/documents", portalHandlers.ListMyDocuments)

	// Agency surface. Staff and homeowners; tenants are turned away the
	// same way the decision table redirects them.
	staff := protected.Group("", middleware.RequireSurface(accessctrl.RouteAdmin))

	staff.GET("/profiles", profileHandlers.ListProfiles)
	staff.GET("/profiles/:id", profileHandlers.GetProfile)
	staff.POST("/profiles", profileHandlers.CreateProfile,
		middleware.RequireRoles(models.RoleAdmin), auditMiddleware.Audit("profile"))
	staff.PUT("/profiles/:id/role", profileHandlers.UpdateRole,
		middleware.RequireRoles(models.RoleAdmin), auditMiddleware.Audit("profile"))

	staff.GET("/tenants", tenantHandlers.ListTenants)
	staff.GET("/tenants/:id", tenantHandlers.GetTenant)
	staff.POST("/tenants", tenantHandlers.CreateTenant, auditMiddleware.Audit("tenant"))
	staff.PUT("/tenants/:id", tenantHandlers.UpdateTenant, auditMiddleware.Audit("tenant"))
	staff.PUT("/tenants/:id/payment-status", tenantHandlers.UpdatePaymentStatus, auditMiddleware.Audit("tenant"))
	staff.DELETE("/tenants/:id", tenantHandlers.ArchiveTenant, auditMiddleware.Audit("tenant"))

	staff.GET("/properties", propertyHandlers.ListProperties)
	staff.GET("/properties/:id", propertyHandlers.GetProperty)
	staff.GET("/properties/:id/tenants", propertyHandlers.ListPropertyTenants)
	staff.POST("/properties", propertyHandlers.CreateProperty, auditMiddleware.Audit("property"))
	staff.PUT("/properties/:id", propertyHandlers.UpdateProperty, auditMiddleware.Audit("property"))
	staff.PUT("/properties/:id/unit-status", propertyHandlers.UpdateUnitStatus, auditMiddleware.Audit("property"))
	staff.DELETE("/properties/:id", propertyHandlers.DeleteProperty, auditMiddleware.Audit("property"))

	staff.GET("/landlords", landlordHandlers.ListLandlords)
	staff.GET("/landlords/:id", landlordHandlers.GetLandlord)
	staff.GET("/landlords/:id/properties", landlordHandlers.ListLandlordProperties)
	staff.POST("/landlords", landlordHandlers.CreateLandlord, auditMiddleware.Audit("landlord"))
	staff.PUT("/landlords/:id", landlordHandlers.UpdateLandlord, auditMiddleware.Audit("landlord"))
	staff.DELETE("/landlords/:id", landlordHandlers.DeleteLandlord, auditMiddleware.Audit("landlord"))

	staff.GET("/payments", paymentHandlers.ListPayments)
	staff.GET("/payments/:id", paymentHandlers.GetPayment)
	staff.GET("/payments/:id/breakdown", paymentHandlers.GetPaymentBreakdown)
	staff.POST("/payments", paymentHandlers.RecordPayment, auditMiddleware.Audit("payment"))

	staff.GET("/maintenance", maintenanceHandlers.ListRequests)
	staff.GET("/maintenance/:id", maintenanceHandlers.GetRequest)
	staff.POST("/maintenance", maintenanceHandlers.CreateRequest, auditMiddleware.Audit("maintenance_request"))
	staff.PUT("/maintenance/:id/status", maintenanceHandlers.UpdateStatus, auditMiddleware.Audit("maintenance_request"))

	staff.GET("/dashboard/financial-summary", dashboardHandlers.GetFinancialSummary)
	staff.GET("/dashboard/occupancy", dashboardHandlers.GetOccupancy)

	staff.GET("/documents", documentHandlers.ListDocuments)
	staff.GET("/documents/:id/download", documentHandlers.GetDownloadURL)
	staff.POST("/documents", documentHandlers.UploadDocument, auditMiddleware.Audit("document"))
	staff.DELETE("/documents/:id", documentHandlers.DeleteDocument, auditMiddleware.Audit("document"))

	staff.GET("/logs", activityHandlers.ListLogs)

	staff.GET("/exports/payments", exportHandlers.GetPaymentLedger)
	staff.GET("/exports/receipts/:id", exportHandlers.GetPaymentReceipt)
	staff.GET("/exports/statements/:id", exportHandlers.GetLandlordStatement)

	staff.POST("/insights/notice", insightsHandlers.DraftNotice)
	staff.POST("/insights/generate", insightsHandlers.Generate)

	// Serve, then drain on SIGINT/SIGTERM.
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

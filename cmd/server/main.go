package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	divisionapp "github.com/backoffice/backend/internal/application/division"
	documentapp "github.com/backoffice/backend/internal/application/document"
	ticketapp "github.com/backoffice/backend/internal/application/ticket"
	visitorapp "github.com/backoffice/backend/internal/application/visitor"
	warehouseapp "github.com/backoffice/backend/internal/application/warehouse"
	"github.com/backoffice/backend/internal/infrastructure/cache"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/backoffice/backend/internal/infrastructure/event"
	"github.com/backoffice/backend/internal/infrastructure/logger"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"github.com/backoffice/backend/internal/infrastructure/storage"
	"github.com/backoffice/backend/internal/infrastructure/telemetry"
	"github.com/backoffice/backend/internal/interfaces/http/handler"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
	"github.com/backoffice/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Back Office API
//	@version		1.0
//	@description	Back-office administration API: divisions with storage quotas, documents, warehouse stock, helpdesk tickets, maintenance and visitor scheduling.

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Back Office Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// OpenTelemetry providers. Both are no-ops when telemetry is disabled,
	// so the wiring below is unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Continuous profiling (Pyroscope). No-op when disabled.
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServerAddr,
		ApplicationName:   cfg.Telemetry.ServiceName,
		ProfileCPU:        true,
		ProfileAllocSpace: true,
		ProfileInuseSpace: true,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Link trace spans to profiles when both are active
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Ship logs to the collector as well, teeing into the existing output
	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := loggerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore,
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
	}

	// Database observability plugins
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DBMetricsConfig{
		Enabled:            cfg.Telemetry.Enabled,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(context.Background())
		defer dbMetrics.Stop()
	}

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:         "postgresql",
		WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	divisionRepo := persistence.NewGormDivisionRepository(db.DB)
	positionRepo := persistence.NewGormPositionRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	opnameRepo := persistence.NewGormOpnameRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)
	visitorRepo := persistence.NewGormVisitorRepository(db.DB)
	storageLedger := persistence.NewGormStorageLedger(db.DB)
	reservationRepo := persistence.NewGormReservationRepository(db.DB)
	warehouseTxScope := persistence.NewGormTransactionScope(db.DB)
	documentTxScope := persistence.NewGormDocumentTransactionScope(db.DB)

	// Idempotency store for replay-safe order and opname transitions.
	// Backed by Redis, with an in-memory fallback for development.
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Object storage for document files. Falls back to the stub backend when
	// no credentials are configured so development works without S3.
	var objectStorage documentapp.ObjectStorageService
	if cfg.Storage.AccessKey != "" && cfg.Storage.SecretKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage credentials not configured, using stub backend")
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize application services
	divisionService := divisionapp.NewDivisionService(divisionRepo, eventBus)
	positionService := divisionapp.NewPositionService(positionRepo, divisionRepo)
	quotaService := divisionapp.NewStorageQuotaService(storageLedger, reservationRepo, eventBus)
	documentService := documentapp.NewDocumentService(documentRepo, documentTxScope, objectStorage, eventBus)
	stockItemService := warehouseapp.NewStockItemService(stockItemRepo)
	orderService := warehouseapp.NewOrderService(orderRepo, stockItemRepo, warehouseTxScope, idempotencyStore, eventBus)
	opnameService := warehouseapp.NewOpnameService(opnameRepo, stockItemRepo, warehouseTxScope, idempotencyStore, eventBus)
	ticketService := ticketapp.NewTicketService(ticketRepo, eventBus)
	maintenanceService := ticketapp.NewMaintenanceService(maintenanceRepo)
	visitorService := visitorapp.NewVisitorService(visitorRepo)

	// Business metrics: counters recorded by services, gauges collected
	// periodically from the database.
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:           meterProvider.Meter("backoffice.business"),
		Logger:          log,
		StorageProvider: telemetry.NewGormStorageMetricsProvider(db.DB),
		StockProvider:   telemetry.NewGormStockMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	if meterProvider.IsEnabled() {
		businessMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
		defer businessMetrics.Stop()
	}
	orderService.SetBusinessMetrics(businessMetrics)
	ticketService.SetBusinessMetrics(businessMetrics)
	documentService.SetBusinessMetrics(businessMetrics)

	// Register event handlers for cross-context integration
	// Storage reservation -> division usage alert
	capacityAlertHandler := divisionapp.NewCapacityAlertHandler(divisionRepo, log)
	eventBus.Subscribe(capacityAlertHandler)

	log.Info("Event handlers registered",
		zap.Strings("capacity_alert_events", capacityAlertHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	divisionHandler := handler.NewDivisionHandler(divisionService)
	positionHandler := handler.NewPositionHandler(positionService)
	storageHandler := handler.NewStorageHandler(quotaService)
	documentHandler := handler.NewDocumentHandler(documentService)
	stockItemHandler := handler.NewStockItemHandler(stockItemService)
	orderHandler := handler.NewWarehouseOrderHandler(orderService)
	opnameHandler := handler.NewStockOpnameHandler(opnameService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	visitorHandler := handler.NewVisitorHandler(visitorService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans with request ID correlation
	// 5. Metrics - HTTP RED metrics per route
	// 6. Profiling - Pyroscope labels per request
	// 7. Security - Add security headers
	// 8. CORS - Handle cross-origin requests
	// 9. BodyLimit - Limit request body size
	// 10. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Profiling())
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Division domain (divisions, positions, storage quotas)
	divisionRoutes := router.NewDomainGroup("division", "/divisions")
	divisionRoutes.POST("", divisionHandler.Create)
	divisionRoutes.GET("", divisionHandler.List)
	divisionRoutes.GET("/:id", divisionHandler.GetByID)
	divisionRoutes.PUT("/:id", divisionHandler.Update)
	divisionRoutes.PATCH("/:id/capacity", divisionHandler.Resize)
	divisionRoutes.DELETE("/:id", divisionHandler.Delete)

	positionRoutes := router.NewDomainGroup("position", "/positions")
	positionRoutes.POST("", positionHandler.Create)
	positionRoutes.GET("", positionHandler.List)
	positionRoutes.GET("/:id", positionHandler.GetByID)
	positionRoutes.PUT("/:id", positionHandler.Update)
	positionRoutes.DELETE("/:id", positionHandler.Delete)

	storageRoutes := router.NewDomainGroup("storage", "/storage")
	storageRoutes.POST("/reservations", storageHandler.Reserve)
	storageRoutes.DELETE("/reservations/:id", storageHandler.Release)
	storageRoutes.POST("/reservations/release", storageHandler.ReleaseByEntity)
	storageRoutes.GET("/divisions/:id/usage", storageHandler.Usage)

	// Document domain
	documentRoutes := router.NewDomainGroup("document", "/documents")
	documentRoutes.POST("", documentHandler.Upload)
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.GET("/number/:number", documentHandler.GetByNumber)
	documentRoutes.GET("/:id", documentHandler.GetByID)
	documentRoutes.GET("/:id/download", documentHandler.Download)
	documentRoutes.PUT("/:id", documentHandler.Update)
	documentRoutes.POST("/:id/archive", documentHandler.Archive)
	documentRoutes.POST("/:id/restore", documentHandler.Restore)
	documentRoutes.DELETE("/:id", documentHandler.Delete)

	// Warehouse domain (stock items, orders, stock opname)
	warehouseRoutes := router.NewDomainGroup("warehouse", "/warehouse")
	warehouseRoutes.POST("/items", stockItemHandler.Create)
	warehouseRoutes.GET("/items", stockItemHandler.List)
	warehouseRoutes.GET("/items/:id", stockItemHandler.GetByID)
	warehouseRoutes.PUT("/items/:id", stockItemHandler.Update)
	warehouseRoutes.POST("/items/:id/receive", stockItemHandler.Receive)
	warehouseRoutes.POST("/items/:id/issue", stockItemHandler.Issue)
	warehouseRoutes.DELETE("/items/:id", stockItemHandler.Delete)

	warehouseRoutes.POST("/orders", orderHandler.Create)
	warehouseRoutes.GET("/orders", orderHandler.List)
	warehouseRoutes.GET("/orders/number/:order_number", orderHandler.GetByOrderNumber)
	warehouseRoutes.GET("/orders/:id", orderHandler.GetByID)
	warehouseRoutes.PUT("/orders/:id/lines", orderHandler.UpdateLines)
	warehouseRoutes.POST("/orders/:id/confirm", orderHandler.Confirm)
	warehouseRoutes.POST("/orders/:id/reject", orderHandler.Reject)
	warehouseRoutes.POST("/orders/:id/deliver", orderHandler.Deliver)
	warehouseRoutes.POST("/orders/:id/accept", orderHandler.Accept)
	warehouseRoutes.POST("/orders/:id/finish", orderHandler.Finish)
	warehouseRoutes.POST("/orders/:id/request-revision", orderHandler.RequestRevision)
	warehouseRoutes.POST("/orders/:id/resubmit", orderHandler.Resubmit)
	warehouseRoutes.DELETE("/orders/:id", orderHandler.Delete)

	warehouseRoutes.POST("/opnames", opnameHandler.Create)
	warehouseRoutes.GET("/opnames", opnameHandler.List)
	warehouseRoutes.GET("/opnames/:id", opnameHandler.GetByID)
	warehouseRoutes.POST("/opnames/:id/start", opnameHandler.Start)
	warehouseRoutes.POST("/opnames/:id/counts", opnameHandler.RecordCounts)
	warehouseRoutes.POST("/opnames/:id/mark-counted", opnameHandler.MarkCounted)
	warehouseRoutes.POST("/opnames/:id/finish", opnameHandler.Finish)
	warehouseRoutes.DELETE("/opnames/:id", opnameHandler.Delete)

	// Helpdesk domain (tickets, maintenance)
	ticketRoutes := router.NewDomainGroup("ticket", "/tickets")
	ticketRoutes.POST("", ticketHandler.Create)
	ticketRoutes.GET("", ticketHandler.List)
	ticketRoutes.GET("/:id", ticketHandler.GetByID)
	ticketRoutes.POST("/:id/accept", ticketHandler.Accept)
	ticketRoutes.POST("/:id/reject", ticketHandler.Reject)
	ticketRoutes.POST("/:id/finish", ticketHandler.Finish)
	ticketRoutes.POST("/:id/request-refinement", ticketHandler.RequestRefinement)
	ticketRoutes.POST("/:id/close", ticketHandler.Close)
	ticketRoutes.POST("/:id/feedback", ticketHandler.GiveFeedback)

	maintenanceRoutes := router.NewDomainGroup("maintenance", "/maintenances")
	maintenanceRoutes.POST("", maintenanceHandler.Create)
	maintenanceRoutes.GET("", maintenanceHandler.List)
	maintenanceRoutes.GET("/:id", maintenanceHandler.GetByID)
	maintenanceRoutes.POST("/:id/start", maintenanceHandler.Start)
	maintenanceRoutes.POST("/:id/finish", maintenanceHandler.Finish)
	maintenanceRoutes.POST("/:id/confirm", maintenanceHandler.Confirm)
	maintenanceRoutes.POST("/:id/cancel", maintenanceHandler.Cancel)

	// Visitor domain
	visitorRoutes := router.NewDomainGroup("visitor", "/visitors")
	visitorRoutes.POST("", visitorHandler.Schedule)
	visitorRoutes.GET("", visitorHandler.List)
	visitorRoutes.GET("/:id", visitorHandler.GetByID)
	visitorRoutes.POST("/:id/reschedule", visitorHandler.Reschedule)
	visitorRoutes.POST("/:id/check-in", visitorHandler.CheckIn)
	visitorRoutes.POST("/:id/check-out", visitorHandler.CheckOut)
	visitorRoutes.POST("/:id/cancel", visitorHandler.Cancel)
	visitorRoutes.DELETE("/:id", visitorHandler.Delete)

	// System routes (info, ping, workflow metadata)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/workflows", systemHandler.ListWorkflows)

	// Register all domain groups
	r.Register(divisionRoutes).
		Register(positionRoutes).
		Register(storageRoutes).
		Register(documentRoutes).
		Register(warehouseRoutes).
		Register(ticketRoutes).
		Register(maintenanceRoutes).
		Register(visitorRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

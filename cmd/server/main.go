package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	adminapp "github.com/catsync/backend/internal/application/admin"
	catalogapp "github.com/catsync/backend/internal/application/catalog"
	identityapp "github.com/catsync/backend/internal/application/identity"
	syncapp "github.com/catsync/backend/internal/application/sync"
	webhookapp "github.com/catsync/backend/internal/application/webhook"
	domainsync "github.com/catsync/backend/internal/domain/sync"
	"github.com/catsync/backend/internal/infrastructure/cache"
	"github.com/catsync/backend/internal/infrastructure/config"
	"github.com/catsync/backend/internal/infrastructure/event"
	"github.com/catsync/backend/internal/infrastructure/logger"
	"github.com/catsync/backend/internal/infrastructure/marketplace"
	"github.com/catsync/backend/internal/infrastructure/persistence"
	"github.com/catsync/backend/internal/infrastructure/scheduler"
	"github.com/catsync/backend/internal/infrastructure/secrets"
	webhookinfra "github.com/catsync/backend/internal/infrastructure/webhook"
	"github.com/catsync/backend/internal/interfaces/http/handler"
	"github.com/catsync/backend/internal/interfaces/http/middleware"
	"github.com/catsync/backend/internal/interfaces/http/router"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting catsync server",
		zap.String("environment", cfg.App.Environment),
		zap.String("addr", cfg.HTTP.Addr()),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	// Redis (optional; settings reads fall back to the repository)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unavailable, settings cache degrades to database reads", zap.Error(err))
	}
	defer func() {
		_ = redisClient.Close()
	}()

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	affiliateRepo := persistence.NewGormAffiliateRepository(db.DB)
	scheduleRepo := persistence.NewGormScheduleRepository(db.DB)
	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)
	webhookRepo := persistence.NewGormWebhookRepository(db.DB)
	webhookLogRepo := persistence.NewGormWebhookLogRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Credential encryption
	cipher, err := secrets.NewCipher(cfg.Secrets.MasterKey)
	if err != nil {
		log.Fatal("Failed to initialize credential cipher", zap.Error(err))
	}

	// Marketplace client
	marketplaceClient, err := marketplace.NewClient(&marketplace.Config{
		BaseURL:        cfg.Marketplace.BaseURL,
		RequestTimeout: cfg.Marketplace.RequestTimeout,
		PageSize:       cfg.Marketplace.PageSize,
		TokenMargin:    cfg.Marketplace.TokenMargin,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize marketplace client", zap.Error(err))
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Settings cache
	settingsCache := cache.NewSettingsCache(settingsRepo, redisClient, 30*time.Second, log)

	// Sync services
	planner := scheduler.NewPlanner()
	syncService := syncapp.NewSyncService(
		tenantRepo, productRepo, syncLogRepo, scheduleRepo,
		marketplaceClient, cipher, planner, eventBus, log,
	)

	registry := scheduler.NewRegistry(func(ctx context.Context, tenantID uuid.UUID) {
		if _, err := syncService.RunSync(ctx, tenantID, domainsync.SyncTypeScheduled); err != nil {
			log.Warn("scheduled sync run rejected",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}, log)
	scheduleService := syncapp.NewScheduleService(scheduleRepo, planner, registry, log)

	// Webhook services
	dispatcher := webhookinfra.NewDispatcher(&webhookinfra.Config{
		RequestTimeout:  cfg.Webhook.RequestTimeout,
		MaxResponseSize: cfg.Webhook.MaxResponseSize,
	}, log)
	webhookService := webhookapp.NewWebhookService(webhookRepo, webhookLogRepo, dispatcher, log)
	dispatchHandler := webhookapp.NewDispatchHandler(webhookService, webhookRepo, log)
	eventBus.Subscribe(dispatchHandler)

	// Catalog services
	productService := catalogapp.NewProductService(productRepo, log)
	compositionService := catalogapp.NewCompositionService(productRepo, affiliateRepo, settingsCache, log)
	categoryService := catalogapp.NewCategoryService(productRepo, affiliateRepo, settingsCache, log)

	// Admin services
	settingsService := adminapp.NewSettingsService(settingsRepo, settingsCache, log)
	tenantService := identityapp.NewTenantService(tenantRepo, cipher, log)

	// Re-arm persisted schedules
	if cfg.Scheduler.Enabled {
		if err := scheduleService.RegisterAll(context.Background()); err != nil {
			log.Error("Failed to register persisted schedules", zap.Error(err))
		}
	}

	// HTTP server
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.BodyLimit(cfg.HTTP.MaxBodyBytes),
		logger.GinMiddleware(log),
		logger.GinRecovery(log),
		middleware.TenantWithConfig(middleware.TenantConfig{
			// Platform administration runs without tenant context
			SkipPaths: []string{"/health", "/api/v1/admin"},
		}),
	)

	systemHandler := handler.NewSystemHandler(db, redisClient)
	engine.GET("/health", systemHandler.Health)

	api := router.NewRouter(engine, router.WithAPIVersion("v1"))
	api.Register(handler.NewProductHandler(productService))
	api.Register(handler.NewStoreHandler(compositionService, categoryService))
	api.Register(handler.NewSyncHandler(syncService, scheduleService))
	api.Register(handler.NewWebhookHandler(webhookService))
	api.Register(handler.NewAdminHandler(settingsService, tenantService))
	api.Setup()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	registry.Stop()

	log.Info("Shutdown complete")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/inkthread/backend/internal/application/cart"
	catalogapp "github.com/inkthread/backend/internal/application/catalog"
	orderapp "github.com/inkthread/backend/internal/application/order"
	"github.com/inkthread/backend/internal/infrastructure/cache"
	"github.com/inkthread/backend/internal/infrastructure/config"
	"github.com/inkthread/backend/internal/infrastructure/event"
	"github.com/inkthread/backend/internal/infrastructure/logger"
	"github.com/inkthread/backend/internal/infrastructure/persistence"
	"github.com/inkthread/backend/internal/interfaces/http/handler"
	"github.com/inkthread/backend/internal/interfaces/http/middleware"
	"github.com/inkthread/backend/internal/interfaces/http/router"
)

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
		_ = log.Sync()
	}()

	log.Info("Starting inkthread backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Repositories and the stock ledger
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	stockLedger := persistence.NewGormStockLedger(db.DB)

	// Cart store (redis or in-memory, per config)
	cartStore, cartStoreCloser, err := cache.NewCartStoreFactory(
		cfg.Cart, cfg.Redis, cache.WithLogger(log),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cart store", zap.Error(err))
	}
	defer func() {
		if err := cartStoreCloser.Close(); err != nil {
			log.Error("Error closing cart store", zap.Error(err))
		}
	}()
	log.Info("Cart store ready", zap.String("store", cfg.Cart.Store))

	// Event bus with the audit trail subscribed
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	cartService := cartapp.NewCartService(cartStore, productRepo)
	orderService := orderapp.NewOrderService(
		orderRepo, productRepo, stockLedger, cartStore, log, cfg.Order.PlacementTimeout)
	orderService.SetEventPublisher(eventBus)

	// HTTP engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.AccessLog(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.Identity())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewOrderHandler(orderService))
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

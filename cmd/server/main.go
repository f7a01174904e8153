package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/nexkart/backend/internal/application/catalog"
	identityapp "github.com/nexkart/backend/internal/application/identity"
	shoppingapp "github.com/nexkart/backend/internal/application/shopping"
	syncapp "github.com/nexkart/backend/internal/application/sync"
	tradeapp "github.com/nexkart/backend/internal/application/trade"
	"github.com/nexkart/backend/internal/infrastructure/auth"
	"github.com/nexkart/backend/internal/infrastructure/cache"
	"github.com/nexkart/backend/internal/infrastructure/catalogsync"
	"github.com/nexkart/backend/internal/infrastructure/config"
	"github.com/nexkart/backend/internal/infrastructure/logger"
	"github.com/nexkart/backend/internal/infrastructure/persistence"
	"github.com/nexkart/backend/internal/interfaces/http/handler"
	"github.com/nexkart/backend/internal/interfaces/http/middleware"
	"github.com/nexkart/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Nexkart Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis product cache is optional; reads fall back to the
	// database when it is unreachable
	productCache, err := cache.NewProductCache(cfg.Redis, log)
	if err != nil {
		log.Warn("Product cache unavailable, serving reads from database", zap.Error(err))
		productCache = nil
	} else {
		defer func() {
			if err := productCache.Close(); err != nil {
				log.Error("Error closing cache", zap.Error(err))
			}
		}()
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Catalog synchronization pipeline
	fetcher := catalogsync.NewHTTPFetcher(cfg.Sync.SourceURL, cfg.Sync.FetchTimeout)
	reconciler := catalogsync.NewReconciler(db, log)
	coordinator := catalogsync.NewCoordinator(fetcher, reconciler, cfg.Sync.RunTimeout, log)
	if productCache != nil {
		coordinator.OnCatalogChanged(productCache.InvalidateAll)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, productCache, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	userService := identityapp.NewUserService(userRepo, jwtService, log)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, couponRepo)
	wishlistService := shoppingapp.NewWishlistService(wishlistRepo, productRepo)
	couponService := shoppingapp.NewCouponService(couponRepo)
	orderService := tradeapp.NewOrderService(db, orderRepo, log)
	syncService := syncapp.NewSyncService(coordinator, productRepo, log)

	// Background catalog watcher
	var watcher *catalogsync.Watcher
	if cfg.Sync.Enabled {
		watcher = catalogsync.NewWatcher(coordinator, cfg.Sync.PollInterval, log)
		if err := watcher.Start(context.Background()); err != nil {
			log.Fatal("Failed to start catalog watcher", zap.Error(err))
		}
		log.Info("Catalog watcher started",
			zap.String("source_url", cfg.Sync.SourceURL),
			zap.Duration("poll_interval", cfg.Sync.PollInterval),
		)
	}

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
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Middleware handed to route registrars
	optAuthMW := middleware.OptionalJWTAuth(jwtService)
	authMW := middleware.JWTAuth(jwtService)
	adminMW := middleware.RequireAdmin()

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewUserHandler(userService, authMW, adminMW)).
		Register(handler.NewProductHandler(productService, reviewService, optAuthMW, authMW, adminMW)).
		Register(handler.NewCartHandler(cartService, authMW)).
		Register(handler.NewWishlistHandler(wishlistService, authMW)).
		Register(handler.NewOrderHandler(orderService, authMW, adminMW)).
		Register(handler.NewSyncHandler(syncService, couponService, authMW, adminMW))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if watcher != nil {
		if err := watcher.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping catalog watcher", zap.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", zap.Error(err))
	}
	log.Info("Shutdown complete")
}

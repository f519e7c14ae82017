package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	syncapp "github.com/greenline/shopify-bridge/internal/application/sync"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"github.com/greenline/shopify-bridge/internal/infrastructure/cache"
	"github.com/greenline/shopify-bridge/internal/infrastructure/config"
	"github.com/greenline/shopify-bridge/internal/infrastructure/greenline"
	"github.com/greenline/shopify-bridge/internal/infrastructure/logger"
	"github.com/greenline/shopify-bridge/internal/infrastructure/persistence"
	"github.com/greenline/shopify-bridge/internal/infrastructure/shopify"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/handler"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/middleware"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/router"
)

func main() {
	// Load .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting Shopify bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Order page positions live in Redis so a restart keeps them; without
	// a configured Redis the bridge falls back to process memory.
	var cursorStore orders.CursorStore
	if cfg.Redis.Host != "" {
		redisStore, err := cache.NewRedisCursorStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		cursorStore = redisStore
		log.Info("Redis connected successfully")
	} else {
		cursorStore = cache.NewInMemoryCursorStore()
		log.Warn("Redis not configured, order page positions are process-local")
	}

	// Upstream clients
	shopifyClient, err := shopify.NewClient(&shopify.Config{
		AccessToken:    cfg.Shopify.AccessToken,
		APIVersion:     cfg.Shopify.APIVersion,
		PageSize:       cfg.Shopify.PageSize,
		TimeoutSeconds: cfg.Shopify.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to configure shopify client", zap.Error(err))
	}

	greenlineClient, err := greenline.NewClient(&greenline.Config{
		Endpoint:       cfg.Greenline.Endpoint,
		APIKey:         cfg.Greenline.APIKey,
		TimeoutSeconds: cfg.Greenline.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to configure greenline client", zap.Error(err))
	}

	// Repositories and services
	checkpointRepo := persistence.NewGormCheckpointRepository(db.DB)
	syncRunRepo := persistence.NewGormSyncRunRepository(db.DB)

	catalogService := syncapp.NewCatalogService(
		shopifyClient, greenlineClient, checkpointRepo, syncRunRepo, log,
		syncapp.Options{
			WindowSize:      cfg.Sync.WindowSize,
			FetchRetryLimit: cfg.Sync.FetchRetryLimit,
		},
	)
	orderService := syncapp.NewOrderService(shopifyClient, greenlineClient, cursorStore, log)
	dispatcher := syncapp.NewDispatcher(catalogService, orderService)

	// HTTP server
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
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(1 << 20))

	health := healthHandler(db)
	engine.GET("/health", health)
	engine.GET("/healthz", health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.ShopDomain(middleware.ShopDomainConfig{
		Verifier: greenlineClient,
		Logger:   log,
	}))
	r.Register(
		handler.NewCatalogHandler(dispatcher),
		handler.NewOrderHandler(dispatcher),
		handler.NewSystemHandler(),
	)
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// healthHandler reports process and database liveness.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	bulklinkapp "github.com/sattv/backend/internal/application/bulklink"
	renewalapp "github.com/sattv/backend/internal/application/renewal"
	rosterapp "github.com/sattv/backend/internal/application/roster"
	"github.com/sattv/backend/internal/infrastructure/config"
	"github.com/sattv/backend/internal/infrastructure/logger"
	"github.com/sattv/backend/internal/infrastructure/persistence"
	"github.com/sattv/backend/internal/interfaces/http/handler"
	"github.com/sattv/backend/internal/interfaces/http/middleware"
	"github.com/sattv/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SatTV backend",
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

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	billingRepo := persistence.NewGormBillingRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// Renewal cost amount comes from config; "0" disables the cost entry,
	// empty is allowed outside production and also disables it
	costAmount := decimal.Zero
	if cfg.Renewal.CostAmount != "" {
		costAmount, err = decimal.NewFromString(cfg.Renewal.CostAmount)
		if err != nil {
			log.Fatal("Invalid renewal.cost_amount",
				zap.String("value", cfg.Renewal.CostAmount), zap.Error(err))
		}
	}

	// Initialize application services
	bulkLinkService := bulklinkapp.NewService(customerRepo, equipmentRepo, subscriptionRepo, billingRepo, log)
	renewalService := renewalapp.NewService(subscriptionRepo, billingRepo, paymentRepo, costAmount, log)
	rosterService := rosterapp.NewService(customerRepo, log)

	// Setup Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order matters:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Secure/CORS - Response headers
	// 5. RateLimit - Per-tenant request throttle
	// 6. BodyLimit - Limit request body size (pasted batches can be large,
	//    but not unbounded)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Register domain handlers
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewBulkLinkHandler(bulkLinkService, cfg.Batch)).
		Register(handler.NewSubscriptionHandler(renewalService)).
		Register(handler.NewRosterHandler(rosterService))
	r.Setup()

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
func healthHandler(db *persistence.Database) gin.HandlerFunc {
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

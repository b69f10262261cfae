package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourorg/trading-journal/internal/config"
	"github.com/yourorg/trading-journal/internal/handler"
	"github.com/yourorg/trading-journal/internal/kafka"
	"github.com/yourorg/trading-journal/internal/middleware"
	"github.com/yourorg/trading-journal/internal/repository"
	"github.com/yourorg/trading-journal/internal/service"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	tradeRepo := repository.NewTradeRepository(db, logger)
	accountRepo := repository.NewAccountRepository(db, logger)
	assetRepo := repository.NewAssetRepository(db, logger)

	// Initialize Kafka producer (if enabled)
	var producer *kafka.Producer
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(
			cfg.Kafka.Brokers,
			"analytics-service",
			cfg.Kafka.Topics["complianceEvents"],
			logger,
		)
		logger.Info("Initialized Kafka producer", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// Initialize services
	var events service.EventPublisher
	if producer != nil {
		events = producer
	}
	drawdownService := service.NewDrawdownService(tradeRepo, accountRepo, events, logger)
	statsService := service.NewStatsService(tradeRepo, accountRepo, logger)
	analyticsService := service.NewAnalyticsService(tradeRepo, accountRepo, assetRepo, logger)
	smartLimitService := service.NewSmartLimitService(tradeRepo, accountRepo, logger)

	// Initialize handlers
	drawdownHandler := handler.NewDrawdownHandler(drawdownService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	smartLimitsHandler := handler.NewSmartLimitsHandler(smartLimitService, logger)

	// Set up HTTP server with Gin
	router := setupRouter(
		drawdownHandler,
		statsHandler,
		analyticsHandler,
		smartLimitsHandler,
		logger,
		cfg,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if producer != nil {
		producer.Close()
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	drawdownHandler *handler.DrawdownHandler,
	statsHandler *handler.StatsHandler,
	analyticsHandler *handler.AnalyticsHandler,
	smartLimitsHandler *handler.SmartLimitsHandler,
	logger *zap.Logger,
	cfg *config.Config,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Account analytics routes
		accounts := v1.Group("/accounts")
		{
			accounts.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret, logger))

			accounts.GET("/:id/drawdown", drawdownHandler.GetDrawdown)
			accounts.GET("/:id/objectives", drawdownHandler.GetObjectivesProgress)
			accounts.GET("/:id/stats", statsHandler.GetAccountStats)
			accounts.GET("/:id/analytics", analyticsHandler.GetAnalytics)
			accounts.GET("/:id/smart-limits", smartLimitsHandler.GetStatus)
		}

		// Playbook analytics routes
		playbooks := v1.Group("/playbooks")
		{
			playbooks.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret, logger))

			playbooks.GET("/:id/stats", statsHandler.GetPlaybookStats)
		}

		// Service-to-service routes (requires service key)
		internal := v1.Group("/service")
		internal.Use(middleware.ServiceAuthMiddleware(cfg.ServiceKey, logger))
		{
			// Admission check invoked by the trade-write path
			internal.POST("/accounts/:id/smart-limits/check", smartLimitsHandler.CheckLimits)
		}
	}

	return router
}

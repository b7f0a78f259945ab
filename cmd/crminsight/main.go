package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crm-insight/internal/api"
	"crm-insight/internal/api/handlers"
	"crm-insight/internal/ratelimit"
	"crm-insight/internal/repository"
	"crm-insight/internal/schema"
	"crm-insight/internal/service"
	"crm-insight/pkg/config"
	"crm-insight/pkg/logger"
	"crm-insight/pkg/postgres"

	"go.uber.org/zap"
)

// @title CRM Insight API
// @version 1.0
// @description Transaction batch ingestion with RFM segmentation and integrity digests

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting CRM Insight service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	uploadRepo := repository.NewUploadRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	// Initialize the ingestion pipeline: one limiter instance owned
	// here and passed in, never ambient state
	limiter := ratelimit.NewLimiter(cfg.Upload.RateLimit, cfg.Upload.RateWindow)
	columns := schema.DefaultColumns()
	validator := schema.NewValidator(columns, cfg.Upload.MaxRows, cfg.Upload.MaxFieldLen)

	// Initialize services
	uploadService := service.NewUploadService(limiter, validator, uploadRepo, appLogger)
	analyticsService := service.NewAnalyticsService(txRepo, cfg.Analytics.DataFile, appLogger)
	predictionService := service.NewPredictionService(&cfg.Model, appLogger)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(uploadService, columns, appLogger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, appLogger)
	predictionHandler := handlers.NewPredictionHandler(predictionService, appLogger)

	// Setup router
	app := api.SetupRouter(uploadHandler, analyticsHandler, predictionHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobby-s-dev/weather-panel/internal/api"
	"github.com/bobby-s-dev/weather-panel/internal/config"
	"github.com/bobby-s-dev/weather-panel/internal/scheduler"
	"github.com/bobby-s-dev/weather-panel/internal/services"
	"github.com/bobby-s-dev/weather-panel/pkg/client"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	zap.ReplaceGlobals(logger)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger = newLogger(cfg, logger)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	logger.Info("Starting Weather Panel Service")

	if cfg.WeatherAPI.OpenWeatherAPIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set, lookups will be rejected by the provider")
	}

	weatherClient := client.NewOpenWeatherClient(
		client.StaticKey(cfg.WeatherAPI.OpenWeatherAPIKey),
		cfg.WeatherAPI.OpenWeatherURL,
		client.ClientConfig{
			Timeout:        cfg.WeatherAPI.Timeout,
			Threshold:      cfg.CircuitBreaker.Threshold,
			BreakerTimeout: cfg.CircuitBreaker.Timeout,
		},
		logger,
	)

	panel := services.NewPanel(weatherClient, logger,
		services.WithDefaultCity(cfg.Panel.DefaultCity),
		services.WithObserver(func(s services.ViewState) {
			logger.Debug("Panel state changed", zap.String("status", s.Status().String()))
		}),
	)

	// Mount: the default lookup is sequenced before the first request is
	// served, so a user search always supersedes it.
	mount, err := panel.BeginMount(context.Background())
	if err != nil {
		logger.Fatal("Failed to start initial lookup", zap.Error(err))
	}
	go func() {
		if _, err := mount(); err != nil {
			logger.Debug("Initial lookup did not complete", zap.Error(err))
		}
	}()

	var refresher *scheduler.Scheduler
	if cfg.Panel.RefreshSchedule != "" {
		refresher = scheduler.NewScheduler(panel, cfg.Panel.RefreshSchedule, cfg.WeatherAPI.Timeout, logger)
		if err := refresher.Start(); err != nil {
			logger.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "weather-panel",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          api.ErrorHandler,
	})

	handler := api.NewHandler(panel, logger)
	api.SetupRoutes(app, handler, cfg.Server.StaticDir, logger)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if refresher != nil {
		refresher.Stop()
	}

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(cfg *config.Config, fallback *zap.Logger) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = cfg.Level()

	logger, err := zcfg.Build()
	if err != nil {
		fallback.Warn("Failed to build configured logger", zap.Error(err))
		return fallback
	}
	return logger
}

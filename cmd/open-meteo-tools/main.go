package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/open-meteo-tools/internal/api/http"
	"github.com/i474232898/open-meteo-tools/internal/config"
	"github.com/i474232898/open-meteo-tools/internal/observability"
	"github.com/i474232898/open-meteo-tools/internal/scheduler"
	"github.com/i474232898/open-meteo-tools/internal/store"
	"github.com/i474232898/open-meteo-tools/internal/tools"
	"github.com/i474232898/open-meteo-tools/internal/weather"
	"github.com/i474232898/open-meteo-tools/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound Open-Meteo calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	omCfg := providers.DefaultOpenMeteoConfig()
	omCfg.ForecastURL = cfg.ForecastURL
	omCfg.AirQualityURL = cfg.AirQualityURL
	omCfg.GeocodingURL = cfg.GeocodingURL
	omCfg.ArchiveURL = cfg.ArchiveURL
	omCfg.MarineURL = cfg.MarineURL
	omCfg.UserAgent = cfg.UserAgent
	omCfg.Backoff.MaxRetries = cfg.UpstreamMaxRetries

	// Provider with resilience (backoff + circuit breaker per endpoint family).
	provider := providers.NewOpenMeteoProvider(httpClient, omCfg, log, metrics)

	clock := clockwork.NewRealClock()
	service := weather.NewService(provider, clock, log, metrics, cfg.CompareConcurrency)

	registry := tools.NewRegistry(log, metrics)
	if err := registry.Register(tools.New(service)...); err != nil {
		log.Error("failed to register tools", "error", err)
		os.Exit(1)
	}
	resources, err := tools.NewResources()
	if err != nil {
		log.Error("failed to load resources", "error", err)
		os.Exit(1)
	}
	prompts, err := tools.NewPrompts()
	if err != nil {
		log.Error("failed to load prompts", "error", err)
		os.Exit(1)
	}

	// Watcher that periodically evaluates alerts for configured locations.
	watchHistory := store.NewMemoryStore(cfg.WatchHistory, cfg.WatchRetention, clock)
	sched := scheduler.New(cfg.Locations, cfg.WatchInterval, cfg.WatchHours, service, watchHistory, clock, log, metrics)
	if err := sched.Start(); err != nil {
		log.Error("failed to start alert watcher", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "open-meteo-tools",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "open-meteo-tools",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, httpapi.Catalog{Tools: registry, Resources: resources, Prompts: prompts, Watch: watchHistory})

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}

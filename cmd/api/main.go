package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/sbecerek/CatalogAPI/docs/swagger"
	"github.com/sbecerek/CatalogAPI/pkg/app"
	"github.com/sbecerek/CatalogAPI/pkg/cache"
	"github.com/sbecerek/CatalogAPI/pkg/config"
	"github.com/sbecerek/CatalogAPI/pkg/database"
	"github.com/sbecerek/CatalogAPI/pkg/docstore"
	"github.com/sbecerek/CatalogAPI/pkg/events"
	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	"github.com/sbecerek/CatalogAPI/pkg/logger"
	"github.com/sbecerek/CatalogAPI/pkg/telemetry"
	itemApi "github.com/sbecerek/CatalogAPI/services/item/application/api"
	itemServices "github.com/sbecerek/CatalogAPI/services/item/application/services"
	itemEvents "github.com/sbecerek/CatalogAPI/services/item/domain/events"
)

// @title			Catalog API
// @version		1.0
// @description	Item catalog service: list, read, create, update and delete catalog items.
// @contact.name	API Support
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer closeStorage()

	svcs, err := itemServices.New(appConfig)
	if err != nil {
		log.Error("failed to wire item services", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			HTTPSRedirect:      cfg.HTTPSRedirect,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	checks := []httpx.NamedCheck{svcs.StorageCheck}
	if appConfig.EventBus != nil {
		checks = append(checks, httpx.NamedCheck{Name: "event_bus", Checker: appConfig.EventBus})
	}
	r.Get("/health/ready", httpx.ReadinessHandler(cfg.HealthTimeout, checks...))
	r.Get("/health/live", httpx.LivenessHandler())
	r.Get("/metrics", metricsHandler.ServeHTTP)
	if !cfg.IsProduction() {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}
	itemApi.ItemRoutes(r, appConfig, svcs)

	srv := httpx.NewServer(cfg.ListenAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// openStorage connects the backend selected by STORAGE_BACKEND and returns
// the application container holding its handle. The postgres backend also
// gets the transactional event bus and its forwarder.
func openStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Application, func(), error) {
	a := &app.Application{Config: cfg, Logger: log}

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database pool connected")

		bus, err := events.NewEventBusWithForwarder(pool.DB(), cfg.ServiceName, log)
		if err != nil {
			pool.Close() //nolint:errcheck
			return nil, nil, err
		}
		if err := bus.EnsureTopics(itemEvents.Topics...); err != nil {
			bus.Close()  //nolint:errcheck
			pool.Close() //nolint:errcheck
			return nil, nil, err
		}
		if err := bus.StartForwarder(ctx); err != nil {
			bus.Close()  //nolint:errcheck
			pool.Close() //nolint:errcheck
			return nil, nil, err
		}
		a.Db, a.EventBus = pool, bus
		return a, func() {
			bus.Close()  //nolint:errcheck
			pool.Close() //nolint:errcheck
		}, nil

	case config.StorageMongo:
		client, err := docstore.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("mongodb connected", "database", cfg.MongoDatabase)
		a.Mongo = client
		return a, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Close(closeCtx) //nolint:errcheck
		}, nil

	case config.StorageRedis:
		client, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("redis connected")
		a.Redis = client
		return a, func() { _ = client.Close() }, nil

	default:
		log.Warn("using in-memory storage, items are lost on restart")
		return a, func() {}, nil
	}
}

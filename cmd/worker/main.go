package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/sbecerek/CatalogAPI/pkg/config"
	"github.com/sbecerek/CatalogAPI/pkg/database"
	"github.com/sbecerek/CatalogAPI/pkg/events"
	"github.com/sbecerek/CatalogAPI/pkg/logger"
	"github.com/sbecerek/CatalogAPI/pkg/telemetry"
	itemEvents "github.com/sbecerek/CatalogAPI/services/item/domain/events"
)

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

	if cfg.StorageBackend != config.StoragePostgres {
		slog.Error("worker requires the postgres storage backend", "backend", cfg.StorageBackend)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool.DB(), cfg.ServiceName, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := registerSubscribers(ctx, eventBus, log); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires an audit handler to every item topic.
func registerSubscribers(ctx context.Context, bus *events.EventBus, log logger.Logger) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		itemEvents.TopicItemCreated: auditHandler[itemEvents.ItemCreatedEvent](log, "item created"),
		itemEvents.TopicItemUpdated: auditHandler[itemEvents.ItemUpdatedEvent](log, "item updated"),
		itemEvents.TopicItemDeleted: auditHandler[itemEvents.ItemDeletedEvent](log, "item deleted"),
	}

	for _, topic := range itemEvents.Topics {
		errCh, err := bus.Subscribe(ctx, topic, handlers[topic])
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}

	log.Info("event subscribers registered", "topics", itemEvents.Topics)
	return nil
}

// auditHandler logs every decoded item event. Undecodable payloads are
// returned as errors so the bus retries and then surfaces them.
func auditHandler[E any](log logger.Logger, msg string) func(context.Context, *message.Message) error {
	return func(ctx context.Context, m *message.Message) error {
		var evt E
		if err := json.Unmarshal(m.Payload, &evt); err != nil {
			return err
		}
		log.InfoContext(ctx, msg,
			"message_uuid", m.UUID,
			"event_id", m.Metadata.Get(events.MetadataEventID),
			"event", evt,
		)
		return nil
	}
}

package app

import (
	"github.com/sbecerek/CatalogAPI/pkg/cache"
	"github.com/sbecerek/CatalogAPI/pkg/config"
	"github.com/sbecerek/CatalogAPI/pkg/database"
	"github.com/sbecerek/CatalogAPI/pkg/docstore"
	"github.com/sbecerek/CatalogAPI/pkg/events"
	"github.com/sbecerek/CatalogAPI/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to service constructors and route functions during server initialization.
//
// Only the handle of the configured storage backend is set; the others stay nil.
// EventBus is non-nil only with the postgres backend.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Logger   logger.Logger
	Db       *database.Database
	Mongo    *docstore.Client
	Redis    *cache.RedisClient
	EventBus *events.EventBus
}

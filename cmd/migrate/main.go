package main

import (
	"log/slog"
	"os"

	"github.com/sbecerek/CatalogAPI/migrations/item"
	"github.com/sbecerek/CatalogAPI/pkg/config"
	"github.com/sbecerek/CatalogAPI/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, item.FS); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "schema", "item")
}

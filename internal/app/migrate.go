package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/postgres"
	"github.com/heartmarshall/moviedb-backend/internal/config"
)

// Migrate applies pending PostgreSQL migrations. The badger substrate
// needs none and is rejected.
func Migrate(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)

	if cfg.Store.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate: store driver %q has no migrations", cfg.Store.Driver)
	}

	results, err := postgres.Migrate(ctx, cfg.Store.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, r := range results {
		logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	logger.Info("migrations complete", slog.Int("applied", len(results)))
	return nil
}

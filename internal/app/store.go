package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/badger"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/postgres"
	"github.com/heartmarshall/moviedb-backend/internal/config"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// OpenStore opens the substrate selected by cfg.Driver with the
// repository schema. The caller closes it.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (kv.Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		store, err := badger.Open(cfg.Badger, kvrepo.Schema, logger)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		logger.Info("badger store opened",
			slog.String("path", cfg.Badger.Path),
			slog.Bool("in_memory", cfg.Badger.InMemory),
		)
		return store, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		logger.Info("postgres store connected", slog.Int("max_conns", int(cfg.Postgres.MaxConns)))
		return postgres.NewStore(pool, kvrepo.Schema), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

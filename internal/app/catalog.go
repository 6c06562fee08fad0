package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/movie"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/provider/tmdb"
	"github.com/heartmarshall/moviedb-backend/internal/config"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
	"github.com/heartmarshall/moviedb-backend/internal/service/catalog"
)

// newCatalogService wires the TMDB provider only when an API key is set;
// without one, catalog misses surface as catalog.ErrMovieNotFound.
func newCatalogService(cfg config.TMDBConfig, movies *movie.Repo, txm *kv.TxManager, logger *slog.Logger) *catalog.Service {
	if cfg.APIKey == "" {
		logger.Warn("tmdb api key not configured, remote movie lookup disabled")
		return catalog.NewService(logger, movies, txm, nil)
	}
	return catalog.NewService(logger, movies, txm, tmdb.NewProvider(cfg, logger))
}

// ImportSummary counts the outcome of ImportMovies.
type ImportSummary struct {
	Imported int
	Failed   int
}

// ImportMovies fetches each id through the catalog so that movies already
// present are left untouched. Failures are logged and counted; the import
// continues with the next id.
func ImportMovies(ctx context.Context, configPath string, ids []int) (ImportSummary, error) {
	var summary ImportSummary

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return summary, err
	}
	logger := NewLogger(cfg.Log)

	if cfg.TMDB.APIKey == "" {
		return summary, errors.New("catalog import: tmdb api key is required")
	}

	store, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return summary, err
	}
	defer store.Close() //nolint:errcheck

	svc := newCatalogService(cfg.TMDB, movie.New(), kv.NewTxManager(store), logger)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		m, err := svc.GetOrFetch(ctx, id)
		if err != nil {
			summary.Failed++
			logger.Error("import movie failed", slog.Int("movie_id", id), slog.String("error", err.Error()))
			continue
		}
		summary.Imported++
		logger.Info("movie imported", slog.Int("movie_id", m.ID), slog.String("title", m.Title))
	}

	if summary.Failed > 0 {
		return summary, fmt.Errorf("catalog import: %d of %d movies failed", summary.Failed, len(ids))
	}
	return summary, nil
}

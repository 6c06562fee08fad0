package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// GetOrFetch returns the catalog entry for movieID, fetching it from the
// metadata provider and inserting it when absent. The provider is called
// outside any transaction. If a concurrent insert wins, the stored entry is returned.
func (s *Service) GetOrFetch(ctx context.Context, movieID int) (*domain.Movie, error) {
	existing, err := s.Get(ctx, movieID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if s.provider == nil {
		return nil, ErrMovieNotFound
	}

	result, err := s.provider.FetchMovie(ctx, movieID)
	if err != nil {
		s.log.ErrorContext(ctx, "movie provider error",
			slog.Int("movie_id", movieID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("fetch movie: %w", err)
	}
	if result == nil {
		return nil, ErrMovieNotFound
	}

	movie := mapToMovie(movieID, result)
	outcome, err := s.UpsertIfAbsent(ctx, movie)
	if err != nil {
		return nil, err
	}
	if outcome.Applied() {
		return &movie, nil
	}

	stored, err := s.Get(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie after concurrent insert: %w", err)
	}
	return stored, nil
}

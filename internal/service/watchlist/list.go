package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// ListAll returns the movie ids in the user's list. Order is not guaranteed.
func (s *Service) ListAll(ctx context.Context, userID string, list domain.ListName) ([]int, error) {
	if err := validateOwner(userID, list); err != nil {
		return nil, err
	}

	var ids []int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ids, err = s.memberships.ListMovieIDs(txCtx, userID, list)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("watchlist.ListAll: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// ListMovies returns the catalog entries of the user's list, ordered by movie id.
// Memberships and catalog rows are read from one snapshot.
func (s *Service) ListMovies(ctx context.Context, userID string, list domain.ListName) ([]domain.Movie, error) {
	if err := validateOwner(userID, list); err != nil {
		return nil, err
	}

	movies := []domain.Movie{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ids, err := s.memberships.ListMovieIDs(txCtx, userID, list)
		if err != nil {
			return err
		}
		slices.Sort(ids)

		for _, id := range ids {
			m, err := s.movies.GetByID(txCtx, id)
			if errors.Is(err, domain.ErrNotFound) {
				s.log.WarnContext(ctx, "list references movie missing from catalog",
					slog.String("user_id", userID),
					slog.String("list", list.String()),
					slog.Int("movie_id", id),
				)
				continue
			}
			if err != nil {
				return err
			}
			movies = append(movies, *m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("watchlist.ListMovies: %w", err)
	}
	return movies, nil
}

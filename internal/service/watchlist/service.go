package watchlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

type membershipRepo interface {
	Contains(ctx context.Context, userID string, list domain.ListName, movieID int) (bool, error)
	Add(ctx context.Context, userID string, list domain.ListName, movieID int) error
	Remove(ctx context.Context, userID string, list domain.ListName, movieID int) error
	ListMovieIDs(ctx context.Context, userID string, list domain.ListName) ([]int, error)
}

type movieRepo interface {
	Exists(ctx context.Context, id int) (bool, error)
	GetByID(ctx context.Context, id int) (*domain.Movie, error)
}

type catalogService interface {
	GetOrFetch(ctx context.Context, movieID int) (*domain.Movie, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages per-user watchlist and watched lists.
type Service struct {
	log         *slog.Logger
	memberships membershipRepo
	movies      movieRepo
	catalog     catalogService
	tx          txManager
}

// NewService creates a list membership service.
func NewService(
	logger *slog.Logger,
	memberships membershipRepo,
	movies movieRepo,
	catalog catalogService,
	tx txManager,
) *Service {
	return &Service{
		log:         logger.With("service", "watchlist"),
		memberships: memberships,
		movies:      movies,
		catalog:     catalog,
		tx:          tx,
	}
}

// requireMovie fails with domain.ErrMissingReference when the catalog has no entry.
// Must run inside the caller's transaction.
func (s *Service) requireMovie(ctx context.Context, movieID int) error {
	exists, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("movie %d: %w", movieID, domain.ErrMissingReference)
	}
	return nil
}

func (s *Service) logOutcome(ctx context.Context, msg string, in MembershipInput, outcome domain.Outcome) {
	s.log.InfoContext(ctx, msg,
		slog.String("user_id", in.UserID),
		slog.String("list", in.List.String()),
		slog.Int("movie_id", in.MovieID),
		slog.String("outcome", outcome.String()),
	)
}

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/provider"
)

type movieRepo interface {
	Exists(ctx context.Context, id int) (bool, error)
	GetByID(ctx context.Context, id int) (*domain.Movie, error)
	Insert(ctx context.Context, m domain.Movie) error
	ListAll(ctx context.Context) ([]domain.Movie, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type movieProvider interface {
	FetchMovie(ctx context.Context, id int) (*provider.MovieResult, error)
	SearchMovies(ctx context.Context, query string) ([]provider.MovieSummary, error)
}

// Service manages the shared movie catalog.
type Service struct {
	log      *slog.Logger
	movies   movieRepo
	tx       txManager
	provider movieProvider
}

// NewService creates a catalog service. provider may be nil, in which case
// movies missing from the catalog are reported as ErrMovieNotFound.
func NewService(
	logger *slog.Logger,
	movies movieRepo,
	tx txManager,
	provider movieProvider,
) *Service {
	return &Service{
		log:      logger.With("service", "catalog"),
		movies:   movies,
		tx:       tx,
		provider: provider,
	}
}

// Exists reports whether the catalog has an entry for movieID.
func (s *Service) Exists(ctx context.Context, movieID int) (bool, error) {
	if err := validateID(movieID); err != nil {
		return false, err
	}

	var exists bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		exists, err = s.movies.Exists(txCtx, movieID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("catalog.Exists: %w", err)
	}
	return exists, nil
}

// Get returns the catalog entry or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, movieID int) (*domain.Movie, error) {
	if err := validateID(movieID); err != nil {
		return nil, err
	}

	var movie *domain.Movie
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		movie, err = s.movies.GetByID(txCtx, movieID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.Get: %w", err)
	}
	return movie, nil
}

func validateID(movieID int) error {
	if movieID <= 0 {
		return domain.NewValidationError("movie_id", "must be positive")
	}
	return nil
}

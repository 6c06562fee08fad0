package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// UpsertIfAbsent inserts the movie unless an entry with the same id exists.
// Existing entries are never overwritten; that case is OutcomeAlreadyPresent.
func (s *Service) UpsertIfAbsent(ctx context.Context, movie domain.Movie) (domain.Outcome, error) {
	movie.Title = strings.TrimSpace(movie.Title)
	if err := validateMovie(movie); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.movies.Exists(txCtx, movie.ID)
		if err != nil {
			return err
		}
		if exists {
			outcome = domain.OutcomeAlreadyPresent
			return nil
		}
		if err := s.movies.Insert(txCtx, movie); err != nil {
			return err
		}
		outcome = domain.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("catalog.UpsertIfAbsent: %w", err)
	}

	if outcome.Applied() {
		s.log.InfoContext(ctx, "movie added to catalog",
			slog.Int("movie_id", movie.ID),
			slog.String("title", movie.Title),
		)
	} else {
		s.log.InfoContext(ctx, "movie already in catalog",
			slog.Int("movie_id", movie.ID),
			slog.String("outcome", outcome.String()),
		)
	}
	return outcome, nil
}

func validateMovie(m domain.Movie) error {
	var errs []domain.FieldError
	if m.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must be positive"})
	}
	if m.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

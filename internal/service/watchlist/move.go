package watchlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// Move transfers a movie between two lists in one transaction, so the movie
// is never observed in both lists or in neither.
//
// If the movie is already in the target list, only the source membership is
// removed: OutcomeApplied when there was one, OutcomeAlreadyMoved otherwise.
func (s *Service) Move(ctx context.Context, in MoveInput) (domain.Outcome, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inTarget, err := s.memberships.Contains(txCtx, in.UserID, in.To, in.MovieID)
		if err != nil {
			return err
		}

		if inTarget {
			inSource, err := s.memberships.Contains(txCtx, in.UserID, in.From, in.MovieID)
			if err != nil {
				return err
			}
			if !inSource {
				outcome = domain.OutcomeAlreadyMoved
				return nil
			}
			if err := s.memberships.Remove(txCtx, in.UserID, in.From, in.MovieID); err != nil {
				return err
			}
			outcome = domain.OutcomeApplied
			return nil
		}

		if err := s.requireMovie(txCtx, in.MovieID); err != nil {
			return err
		}
		if err := s.memberships.Add(txCtx, in.UserID, in.To, in.MovieID); err != nil {
			return err
		}
		if err := s.memberships.Remove(txCtx, in.UserID, in.From, in.MovieID); err != nil {
			return err
		}
		outcome = domain.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("watchlist.Move: %w", err)
	}

	s.log.InfoContext(ctx, "movie moved between lists",
		slog.String("user_id", in.UserID),
		slog.String("from", in.From.String()),
		slog.String("to", in.To.String()),
		slog.Int("movie_id", in.MovieID),
		slog.String("outcome", outcome.String()),
	)
	return outcome, nil
}

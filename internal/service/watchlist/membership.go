package watchlist

import (
	"context"
	"fmt"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// Contains reports whether the movie is in the user's list.
func (s *Service) Contains(ctx context.Context, in MembershipInput) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, err
	}

	var ok bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ok, err = s.memberships.Contains(txCtx, in.UserID, in.List, in.MovieID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("watchlist.Contains: %w", err)
	}
	return ok, nil
}

// Add puts a catalog movie into the user's list. A movie already in the list
// is OutcomeAlreadyMember; a movie missing from the catalog is domain.ErrMissingReference.
func (s *Service) Add(ctx context.Context, in MembershipInput) (domain.Outcome, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		present, err := s.memberships.Contains(txCtx, in.UserID, in.List, in.MovieID)
		if err != nil {
			return err
		}
		if present {
			outcome = domain.OutcomeAlreadyMember
			return nil
		}
		if err := s.requireMovie(txCtx, in.MovieID); err != nil {
			return err
		}
		if err := s.memberships.Add(txCtx, in.UserID, in.List, in.MovieID); err != nil {
			return err
		}
		outcome = domain.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("watchlist.Add: %w", err)
	}

	s.logOutcome(ctx, "movie added to list", in, outcome)
	return outcome, nil
}

// AddMovie makes sure the movie is in the catalog, fetching it from the
// metadata provider if needed, then adds it to the list.
func (s *Service) AddMovie(ctx context.Context, in MembershipInput) (domain.Outcome, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	if _, err := s.catalog.GetOrFetch(ctx, in.MovieID); err != nil {
		return "", fmt.Errorf("watchlist.AddMovie: %w", err)
	}
	return s.Add(ctx, in)
}

// Remove deletes the movie from the user's list, or reports OutcomeNotMember.
func (s *Service) Remove(ctx context.Context, in MembershipInput) (domain.Outcome, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		present, err := s.memberships.Contains(txCtx, in.UserID, in.List, in.MovieID)
		if err != nil {
			return err
		}
		if !present {
			outcome = domain.OutcomeNotMember
			return nil
		}
		if err := s.memberships.Remove(txCtx, in.UserID, in.List, in.MovieID); err != nil {
			return err
		}
		outcome = domain.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("watchlist.Remove: %w", err)
	}

	s.logOutcome(ctx, "movie removed from list", in, outcome)
	return outcome, nil
}

package friendrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// Send records a pending request from requesterID to requesteeID.
//
// Users who are already friends get OutcomeAlreadyFriends and a pending
// request gets OutcomeRequestPending. A declined or accepted row between
// users who are not friends is replaced by a fresh pending one.
func (s *Service) Send(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error) {
	if err := validatePair(requesterID, requesteeID); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, id := range []string{requesterID, requesteeID} {
			exists, err := s.users.Exists(txCtx, id)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("user %s: %w", id, domain.ErrMissingReference)
			}
		}

		friends, err := s.friends.Linked(txCtx, requesterID, requesteeID)
		if err != nil {
			return err
		}
		if friends {
			outcome = domain.OutcomeAlreadyFriends
			return nil
		}

		existing, err := s.requests.Get(txCtx, requesterID, requesteeID)
		switch {
		case err == nil && existing.IsPending():
			outcome = domain.OutcomeRequestPending
			return nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}

		if err := s.requests.Save(txCtx, domain.FriendRequest{
			RequesterID: requesterID,
			RequesteeID: requesteeID,
			Status:      domain.RequestStatusPending,
		}); err != nil {
			return err
		}
		outcome = domain.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("friendrequest.Send: %w", err)
	}

	s.logOutcome(ctx, "friend request sent", requesterID, requesteeID, outcome)
	return outcome, nil
}

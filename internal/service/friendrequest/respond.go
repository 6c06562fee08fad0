package friendrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// Accept resolves a pending request by writing both friend edges and
// marking it accepted, all in one transaction. A pending request in the
// opposite direction is accepted with it. Without a pending request the
// result is OutcomeNoPendingRequest and nothing changes.
func (s *Service) Accept(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error) {
	return s.respond(ctx, requesterID, requesteeID, domain.RequestStatusAccepted)
}

// Decline marks a pending request declined. No edges are written.
func (s *Service) Decline(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error) {
	return s.respond(ctx, requesterID, requesteeID, domain.RequestStatusDeclined)
}

func (s *Service) respond(ctx context.Context, requesterID, requesteeID string, status domain.RequestStatus) (domain.Outcome, error) {
	if err := validatePair(requesterID, requesteeID); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.requests.Get(txCtx, requesterID, requesteeID)
		if errors.Is(err, domain.ErrNotFound) {
			outcome = domain.OutcomeNoPendingRequest
			return nil
		}
		if err != nil {
			return err
		}
		if !req.IsPending() {
			outcome = domain.OutcomeNoPendingRequest
			return nil
		}

		if status == domain.RequestStatusAccepted {
			if _, err := s.friends.Link(txCtx, requesterID, requesteeID); err != nil {
				return err
			}
			if err := s.acceptReverse(txCtx, requesterID, requesteeID); err != nil {
				return err
			}
		}
		req.Status = status
		if err := s.requests.Save(txCtx, *req); err != nil {
			return err
		}
		outcome = domain.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("friendrequest.%s: %w", verb(status), err)
	}

	s.logOutcome(ctx, "friend request "+status.String(), requesterID, requesteeID, outcome)
	return outcome, nil
}

// acceptReverse marks a pending requestee->requester row accepted so it
// no longer shows up once the two users are friends.
func (s *Service) acceptReverse(ctx context.Context, requesterID, requesteeID string) error {
	reverse, err := s.requests.Get(ctx, requesteeID, requesterID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !reverse.IsPending() {
		return nil
	}
	reverse.Status = domain.RequestStatusAccepted
	return s.requests.Save(ctx, *reverse)
}

func verb(status domain.RequestStatus) string {
	if status == domain.RequestStatusAccepted {
		return "Accept"
	}
	return "Decline"
}

package friendrequest

import (
	"context"
	"fmt"
	"sort"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// ListIncoming returns pending requests addressed to userID, sorted by requester.
func (s *Service) ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return nil, err
	}

	var all []domain.FriendRequest
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		all, err = s.requests.ListByRequestee(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("friendrequest.ListIncoming: %w", err)
	}

	pending := filterPending(all)
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].RequesterID < pending[j].RequesterID
	})
	return pending, nil
}

// ListOutgoing returns pending requests sent by userID, sorted by requestee.
func (s *Service) ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return nil, err
	}

	var all []domain.FriendRequest
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		all, err = s.requests.ListByRequester(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("friendrequest.ListOutgoing: %w", err)
	}

	pending := filterPending(all)
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].RequesteeID < pending[j].RequesteeID
	})
	return pending, nil
}

func filterPending(reqs []domain.FriendRequest) []domain.FriendRequest {
	out := make([]domain.FriendRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.IsPending() {
			out = append(out, r)
		}
	}
	return out
}

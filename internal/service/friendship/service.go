package friendship

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

type friendRepo interface {
	Exists(ctx context.Context, userID, friendID string) (bool, error)
	CreatePair(ctx context.Context, a, b string) error
	DeletePair(ctx context.Context, a, b string) error
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
}

type userRepo interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service maintains the mirrored friendship graph. Edges are only ever
// written or deleted in pairs.
type Service struct {
	log     *slog.Logger
	friends friendRepo
	users   userRepo
	tx      txManager
}

// NewService creates a friendship service.
func NewService(logger *slog.Logger, friends friendRepo, users userRepo, tx txManager) *Service {
	return &Service{
		log:     logger.With("service", "friendship"),
		friends: friends,
		users:   users,
		tx:      tx,
	}
}

// AreFriends reports whether userID has otherID as a friend.
func (s *Service) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	if err := validatePair(userID, otherID); err != nil {
		return false, err
	}

	var ok bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ok, err = s.Linked(txCtx, userID, otherID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("friendship.AreFriends: %w", err)
	}
	return ok, nil
}

// CreateMirroredEdge makes a and b friends. Both users must be registered.
func (s *Service) CreateMirroredEdge(ctx context.Context, a, b string) (domain.Outcome, error) {
	if err := validatePair(a, b); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		outcome, err = s.Link(txCtx, a, b)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("friendship.CreateMirroredEdge: %w", err)
	}

	s.log.InfoContext(ctx, "friendship created",
		slog.String("user_id", a),
		slog.String("friend_id", b),
		slog.String("outcome", outcome.String()),
	)
	return outcome, nil
}

// Linked reports whether the a->b edge exists.
// It must run inside the caller's transaction.
func (s *Service) Linked(ctx context.Context, a, b string) (bool, error) {
	return s.friends.Exists(ctx, a, b)
}

// Link writes both edges between a and b. It must run inside the caller's
// transaction, so the pair commits or rolls back with the caller's writes.
func (s *Service) Link(ctx context.Context, a, b string) (domain.Outcome, error) {
	for _, id := range []string{a, b} {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", fmt.Errorf("user %s: %w", id, domain.ErrMissingReference)
		}
	}

	already, err := s.friends.Exists(ctx, a, b)
	if err != nil {
		return "", err
	}
	if already {
		return domain.OutcomeAlreadyFriends, nil
	}
	if err := s.friends.CreatePair(ctx, a, b); err != nil {
		return "", err
	}
	return domain.OutcomeApplied, nil
}

// RemoveMirroredEdge deletes both directions of the friendship.
// A half edge left by an older writer is cleaned up as well.
func (s *Service) RemoveMirroredEdge(ctx context.Context, a, b string) (domain.Outcome, error) {
	if err := validatePair(a, b); err != nil {
		return "", err
	}

	var outcome domain.Outcome
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		forward, err := s.friends.Exists(txCtx, a, b)
		if err != nil {
			return err
		}
		backward, err := s.friends.Exists(txCtx, b, a)
		if err != nil {
			return err
		}
		if !forward && !backward {
			outcome = domain.OutcomeNotFriends
			return nil
		}
		if err := s.friends.DeletePair(txCtx, a, b); err != nil {
			return err
		}
		outcome = domain.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("friendship.RemoveMirroredEdge: %w", err)
	}

	s.log.InfoContext(ctx, "friendship removed",
		slog.String("user_id", a),
		slog.String("friend_id", b),
		slog.String("outcome", outcome.String()),
	)
	return outcome, nil
}

// ListFriends returns userID's friends sorted by id.
func (s *Service) ListFriends(ctx context.Context, userID string) ([]string, error) {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return nil, err
	}

	var ids []string
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ids, err = s.friends.ListFriendIDs(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("friendship.ListFriends: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	slices.Sort(ids)
	return ids, nil
}

func validatePair(a, b string) error {
	var errs []domain.FieldError
	errs = domain.CheckUserID(errs, "user_id", a)
	errs = domain.CheckUserID(errs, "friend_id", b)
	if a != "" && a == b {
		errs = append(errs, domain.FieldError{Field: "friend_id", Message: "must differ from user_id"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

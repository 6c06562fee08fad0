package friendrequest

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

type requestRepo interface {
	Get(ctx context.Context, requesterID, requesteeID string) (*domain.FriendRequest, error)
	Save(ctx context.Context, req domain.FriendRequest) error
	ListByRequestee(ctx context.Context, requesteeID string) ([]domain.FriendRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.FriendRequest, error)
}

// friendGraph is satisfied by *friendship.Service. Both methods run inside
// the caller's transaction.
type friendGraph interface {
	Linked(ctx context.Context, a, b string) (bool, error)
	Link(ctx context.Context, a, b string) (domain.Outcome, error)
}

type userRepo interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs the friend request workflow:
// pending -> accepted | declined. Accepted and declined are terminal.
type Service struct {
	log      *slog.Logger
	requests requestRepo
	friends  friendGraph
	users    userRepo
	tx       txManager
}

// NewService creates a friend request service.
func NewService(
	logger *slog.Logger,
	requests requestRepo,
	friends friendGraph,
	users userRepo,
	tx txManager,
) *Service {
	return &Service{
		log:      logger.With("service", "friendrequest"),
		requests: requests,
		friends:  friends,
		users:    users,
		tx:       tx,
	}
}

func (s *Service) logOutcome(ctx context.Context, msg, requesterID, requesteeID string, outcome domain.Outcome) {
	s.log.InfoContext(ctx, msg,
		slog.String("requester_id", requesterID),
		slog.String("requestee_id", requesteeID),
		slog.String("outcome", outcome.String()),
	)
}

func validatePair(requesterID, requesteeID string) error {
	var errs []domain.FieldError
	errs = domain.CheckUserID(errs, "requester_id", requesterID)
	errs = domain.CheckUserID(errs, "requestee_id", requesteeID)
	if requesterID != "" && requesterID == requesteeID {
		errs = append(errs, domain.FieldError{Field: "requestee_id", Message: "cannot befriend yourself"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

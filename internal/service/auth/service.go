package auth

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

type userRepo interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

type tokenIssuer interface {
	GenerateAccessToken(userID string) (string, error)
}

// Service implements registration and password login.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tx     txManager
	hasher passwordHasher
	tokens tokenIssuer
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tx txManager,
	hasher passwordHasher,
	tokens tokenIssuer,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tx:     tx,
		hasher: hasher,
		tokens: tokens,
	}
}

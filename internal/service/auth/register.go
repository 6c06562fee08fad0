package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// Register creates a new account and issues an access token.
// Returns ErrAlreadyExists if the user ID is taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.UserID = strings.TrimSpace(input.UserID)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Hash outside the transaction; bcrypt is slow on purpose.
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	user := domain.User{
		ID:           input.UserID,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.users.Exists(txCtx, user.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("user %s: %w", user.ID, domain.ErrAlreadyExists)
		}
		return s.users.Create(txCtx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))

	return &AuthResult{AccessToken: token, User: &user}, nil
}

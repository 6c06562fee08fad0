package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// Login authenticates a user by ID and password.
// Returns ErrUnauthorized if the user is unknown or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.UserID = strings.TrimSpace(input.UserID)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var user *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.users.GetByID(txCtx, input.UserID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, input.Password); err != nil {
		s.log.WarnContext(ctx, "password login rejected",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return &AuthResult{AccessToken: token, User: user}, nil
}

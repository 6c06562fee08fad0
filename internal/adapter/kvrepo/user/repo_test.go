package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/kvrepotest"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/user"
	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

func TestRepo_CreateGet(t *testing.T) {
	t.Parallel()

	tm := kvrepotest.NewTxManager(t)
	repo := user.New()
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, tm.RunInTx(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, domain.User{
			ID:           "alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$hash",
			CreatedAt:    created,
		})
	}))

	var got *domain.User
	var exists, missing bool
	require.NoError(t, tm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if exists, err = repo.Exists(ctx, "alice"); err != nil {
			return err
		}
		if missing, err = repo.Exists(ctx, "bob"); err != nil {
			return err
		}
		got, err = repo.GetByID(ctx, "alice")
		return err
	}))

	assert.True(t, exists)
	assert.False(t, missing)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	tm := kvrepotest.NewTxManager(t)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := user.New().GetByID(ctx, "ghost")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

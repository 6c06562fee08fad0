package user

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Collection holds one row per registered user, partitioned by user id.
const Collection = "users"

const (
	attrEmail        = "email"
	attrPasswordHash = "password_hash"
	attrCreatedAt    = "created_at"
)

// Repo provides user persistence.
type Repo struct{}

// New creates a new user repository.
func New() *Repo {
	return &Repo{}
}

func key(id string) kv.Key {
	return kv.Key{Collection: Collection, Partition: id}
}

// Exists reports whether a user with id is registered.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return false, err
	}
	_, ok, err := tx.Get(ctx, key(id))
	if err != nil {
		return false, fmt.Errorf("user %s: %w", id, err)
	}
	return ok, nil
}

// GetByID returns the user or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	row, ok, err := tx.Get(ctx, key(id))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	u := &domain.User{
		ID:           id,
		Email:        row.Attr(attrEmail),
		PasswordHash: row.Attr(attrPasswordHash),
	}
	if ts := row.Attr(attrCreatedAt); ts != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("user %s created_at: %w", id, err)
		}
		u.CreatedAt = createdAt
	}
	return u, nil
}

// Create writes the user. Callers check Exists in the same transaction.
func (r *Repo) Create(ctx context.Context, u domain.User) error {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return err
	}
	row := kv.Row{
		Key: key(u.ID),
		Attrs: map[string]string{
			attrEmail:        u.Email,
			attrPasswordHash: u.PasswordHash,
			attrCreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}
	if err := tx.Put(ctx, row); err != nil {
		return fmt.Errorf("user %s: %w", u.ID, err)
	}
	return nil
}

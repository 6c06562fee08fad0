package membership

import (
	"context"
	"fmt"
	"strconv"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Repo stores list memberships. Each list name is its own collection,
// partitioned by user and clustered by movie id.
type Repo struct{}

// New creates a new membership repository.
func New() *Repo {
	return &Repo{}
}

func key(userID string, list domain.ListName, movieID int) (kv.Key, error) {
	if !list.IsValid() {
		return kv.Key{}, domain.NewValidationError("list", fmt.Sprintf("unknown list %q", list))
	}
	return kv.Key{
		Collection: list.String(),
		Partition:  userID,
		Clustering: strconv.Itoa(movieID),
	}, nil
}

// Contains reports whether movieID is in the user's list.
func (r *Repo) Contains(ctx context.Context, userID string, list domain.ListName, movieID int) (bool, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return false, err
	}
	k, err := key(userID, list, movieID)
	if err != nil {
		return false, err
	}
	_, ok, err := tx.Get(ctx, k)
	if err != nil {
		return false, fmt.Errorf("membership %s: %w", k, err)
	}
	return ok, nil
}

// Add writes the membership row.
func (r *Repo) Add(ctx context.Context, userID string, list domain.ListName, movieID int) error {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return err
	}
	k, err := key(userID, list, movieID)
	if err != nil {
		return err
	}
	if err := tx.Put(ctx, kv.Row{Key: k}); err != nil {
		return fmt.Errorf("membership %s: %w", k, err)
	}
	return nil
}

// Remove deletes the membership row. Removing an absent row is not an error.
func (r *Repo) Remove(ctx context.Context, userID string, list domain.ListName, movieID int) error {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return err
	}
	k, err := key(userID, list, movieID)
	if err != nil {
		return err
	}
	if err := tx.Delete(ctx, k); err != nil {
		return fmt.Errorf("membership %s: %w", k, err)
	}
	return nil
}

// ListMovieIDs returns the movie ids in the user's list, in no particular order.
func (r *Repo) ListMovieIDs(ctx context.Context, userID string, list domain.ListName) ([]int, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !list.IsValid() {
		return nil, domain.NewValidationError("list", fmt.Sprintf("unknown list %q", list))
	}

	rows, err := tx.Scan(ctx, list.String(), userID)
	if err != nil {
		return nil, fmt.Errorf("scan %s of %s: %w", list, userID, err)
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row.Key.Clustering)
		if err != nil {
			return nil, fmt.Errorf("membership key %s: %w", row.Key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

package friend

import (
	"context"
	"fmt"

	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Collection holds friend edges partitioned by user, clustered by friend.
const Collection = "friends"

// Repo stores the friendship graph. Edges are only ever written and
// deleted in mirrored pairs.
type Repo struct{}

// New creates a new friend repository.
func New() *Repo {
	return &Repo{}
}

func edge(userID, friendID string) kv.Key {
	return kv.Key{Collection: Collection, Partition: userID, Clustering: friendID}
}

// Exists reports whether the directed edge userID -> friendID exists.
func (r *Repo) Exists(ctx context.Context, userID, friendID string) (bool, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return false, err
	}
	_, ok, err := tx.Get(ctx, edge(userID, friendID))
	if err != nil {
		return false, fmt.Errorf("friend edge %s->%s: %w", userID, friendID, err)
	}
	return ok, nil
}

// CreatePair writes both a->b and b->a.
func (r *Repo) CreatePair(ctx context.Context, a, b string) error {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := tx.Put(ctx, kv.Row{Key: edge(a, b)}); err != nil {
		return fmt.Errorf("friend edge %s->%s: %w", a, b, err)
	}
	if err := tx.Put(ctx, kv.Row{Key: edge(b, a)}); err != nil {
		return fmt.Errorf("friend edge %s->%s: %w", b, a, err)
	}
	return nil
}

// DeletePair removes both a->b and b->a.
func (r *Repo) DeletePair(ctx context.Context, a, b string) error {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := tx.Delete(ctx, edge(a, b)); err != nil {
		return fmt.Errorf("friend edge %s->%s: %w", a, b, err)
	}
	if err := tx.Delete(ctx, edge(b, a)); err != nil {
		return fmt.Errorf("friend edge %s->%s: %w", b, a, err)
	}
	return nil
}

// ListFriendIDs returns the ids userID has an edge to.
func (r *Repo) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Scan(ctx, Collection, userID)
	if err != nil {
		return nil, fmt.Errorf("scan friends of %s: %w", userID, err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Key.Clustering)
	}
	return ids, nil
}

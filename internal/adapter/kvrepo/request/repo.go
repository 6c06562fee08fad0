package request

import (
	"context"
	"fmt"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Collection holds one row per ordered (requester, requestee) pair,
// partitioned by requester.
const Collection = "friend_requests"

// AttrRequesteeID carries the secondary index used for incoming lookups.
const AttrRequesteeID = "requestee_id"

const attrStatus = "status"

// Repo stores friend requests.
type Repo struct{}

// New creates a new request repository.
func New() *Repo {
	return &Repo{}
}

func key(requesterID, requesteeID string) kv.Key {
	return kv.Key{Collection: Collection, Partition: requesterID, Clustering: requesteeID}
}

// Get returns the request row for the pair or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, requesterID, requesteeID string) (*domain.FriendRequest, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	row, ok, err := tx.Get(ctx, key(requesterID, requesteeID))
	if err != nil {
		return nil, fmt.Errorf("friend request %s->%s: %w", requesterID, requesteeID, err)
	}
	if !ok {
		return nil, fmt.Errorf("friend request %s->%s: %w", requesterID, requesteeID, domain.ErrNotFound)
	}
	return toDomain(row), nil
}

// Save writes the row, replacing any previous row for the pair.
func (r *Repo) Save(ctx context.Context, req domain.FriendRequest) error {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return err
	}
	if !req.Status.IsValid() {
		return domain.NewValidationError("status", fmt.Sprintf("invalid status %q", req.Status))
	}
	row := kv.Row{
		Key: key(req.RequesterID, req.RequesteeID),
		Attrs: map[string]string{
			AttrRequesteeID: req.RequesteeID,
			attrStatus:      req.Status.String(),
		},
	}
	if err := tx.Put(ctx, row); err != nil {
		return fmt.Errorf("friend request %s->%s: %w", req.RequesterID, req.RequesteeID, err)
	}
	return nil
}

// ListByRequestee returns every request addressed to requesteeID,
// whatever its status, via the secondary index.
func (r *Repo) ListByRequestee(ctx context.Context, requesteeID string) ([]domain.FriendRequest, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.ScanIndex(ctx, Collection, AttrRequesteeID, requesteeID)
	if err != nil {
		return nil, fmt.Errorf("scan requests to %s: %w", requesteeID, err)
	}
	return toDomainList(rows), nil
}

// ListByRequester returns every request sent by requesterID.
func (r *Repo) ListByRequester(ctx context.Context, requesterID string) ([]domain.FriendRequest, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Scan(ctx, Collection, requesterID)
	if err != nil {
		return nil, fmt.Errorf("scan requests from %s: %w", requesterID, err)
	}
	return toDomainList(rows), nil
}

func toDomain(row kv.Row) *domain.FriendRequest {
	return &domain.FriendRequest{
		RequesterID: row.Key.Partition,
		RequesteeID: row.Key.Clustering,
		Status:      domain.RequestStatus(row.Attr(attrStatus)),
	}
}

func toDomainList(rows []kv.Row) []domain.FriendRequest {
	out := make([]domain.FriendRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

type tx struct {
	tx     pgx.Tx
	schema kv.Schema
}

// ---------------------------------------------------------------------------
// Point operations
// ---------------------------------------------------------------------------

func (t *tx) Get(ctx context.Context, key kv.Key) (kv.Row, bool, error) {
	if err := key.Validate(); err != nil {
		return kv.Row{}, false, kv.Wrap("get", err)
	}

	query, args, err := psql.Select("attrs").
		From(tableName).
		Where(keyEq(key)).
		ToSql()
	if err != nil {
		return kv.Row{}, false, kv.Wrap("get", fmt.Errorf("build query: %w", err))
	}

	var attrs map[string]string
	err = t.tx.QueryRow(ctx, query, args...).Scan(&attrs)
	if errors.Is(err, pgx.ErrNoRows) {
		return kv.Row{}, false, nil
	}
	if err != nil {
		return kv.Row{}, false, mapError("get", err)
	}
	return kv.Row{Key: key, Attrs: attrs}, true, nil
}

func (t *tx) Put(ctx context.Context, row kv.Row) error {
	if err := row.Key.Validate(); err != nil {
		return kv.Wrap("put", err)
	}

	attrs := row.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return kv.Wrap("put", fmt.Errorf("encode attrs: %w", err))
	}

	query, args, err := psql.Insert(tableName).
		Columns("collection", "partition_key", "clustering_key", "attrs").
		Values(row.Key.Collection, row.Key.Partition, row.Key.Clustering, string(raw)).
		Suffix("ON CONFLICT (collection, partition_key, clustering_key) DO UPDATE SET attrs = EXCLUDED.attrs").
		ToSql()
	if err != nil {
		return kv.Wrap("put", fmt.Errorf("build query: %w", err))
	}

	if _, err := t.tx.Exec(ctx, query, args...); err != nil {
		return mapError("put", err)
	}
	return nil
}

func (t *tx) Delete(ctx context.Context, key kv.Key) error {
	if err := key.Validate(); err != nil {
		return kv.Wrap("delete", err)
	}

	query, args, err := psql.Delete(tableName).Where(keyEq(key)).ToSql()
	if err != nil {
		return kv.Wrap("delete", fmt.Errorf("build query: %w", err))
	}

	if _, err := t.tx.Exec(ctx, query, args...); err != nil {
		return mapError("delete", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scans
// ---------------------------------------------------------------------------

func (t *tx) Scan(ctx context.Context, collection, partition string) ([]kv.Row, error) {
	if err := (kv.Key{Collection: collection, Partition: partition}).Validate(); err != nil {
		return nil, kv.Wrap("scan", err)
	}
	return t.selectRows(ctx, "scan", sq.Eq{"collection": collection, "partition_key": partition})
}

func (t *tx) ScanAll(ctx context.Context, collection string) ([]kv.Row, error) {
	if collection == "" {
		return nil, kv.Wrap("scan all", kv.ErrInvalidKey)
	}
	return t.selectRows(ctx, "scan all", sq.Eq{"collection": collection})
}

func (t *tx) ScanIndex(ctx context.Context, collection, attr, value string) ([]kv.Row, error) {
	if !t.schema.Indexed(collection, attr) {
		return nil, kv.Wrap("scan index", fmt.Errorf("%w: %s.%s", kv.ErrUnknownIndex, collection, attr))
	}
	// attr comes from the schema, never from a caller, so it can be inlined
	// to match the expression index.
	return t.selectRows(ctx, "scan index", sq.And{
		sq.Eq{"collection": collection},
		sq.Expr(fmt.Sprintf("attrs ->> '%s' = ?", attr), value),
	})
}

func (t *tx) selectRows(ctx context.Context, op string, where sq.Sqlizer) ([]kv.Row, error) {
	query, args, err := psql.Select("collection", "partition_key", "clustering_key", "attrs").
		From(tableName).
		Where(where).
		ToSql()
	if err != nil {
		return nil, kv.Wrap(op, fmt.Errorf("build query: %w", err))
	}

	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	var out []kv.Row
	for rows.Next() {
		var r kv.Row
		if err := rows.Scan(&r.Key.Collection, &r.Key.Partition, &r.Key.Clustering, &r.Attrs); err != nil {
			return nil, mapError(op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Completion
// ---------------------------------------------------------------------------

func (t *tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return mapError("commit", err)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return mapError("rollback", err)
	}
	return nil
}

func keyEq(key kv.Key) sq.Eq {
	return sq.Eq{
		"collection":     key.Collection,
		"partition_key":  key.Partition,
		"clustering_key": key.Clustering,
	}
}

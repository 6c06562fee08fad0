// Package postgres implements kv.Store on a single PostgreSQL table.
// Every collection lives in kv_rows keyed by (collection, partition_key,
// clustering_key); attributes are a jsonb object.
package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

const tableName = "kv_rows"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store is a kv.Store over a pgx pool. Transactions run at REPEATABLE READ,
// which PostgreSQL implements as snapshot isolation.
type Store struct {
	pool   *pgxpool.Pool
	schema kv.Schema
}

var _ kv.Store = (*Store)(nil)

// NewStore creates a Store. Index expressions for schema must exist in
// the migrations; the schema only gates which attributes ScanIndex accepts.
func NewStore(pool *pgxpool.Pool, schema kv.Schema) *Store {
	return &Store{pool: pool, schema: schema}
}

func (s *Store) Begin(ctx context.Context) (kv.Tx, error) {
	pgTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, mapError("begin", fmt.Errorf("begin transaction: %w", err))
	}
	return &tx{tx: pgTx, schema: s.schema}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

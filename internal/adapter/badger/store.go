package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/heartmarshall/moviedb-backend/internal/config"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Store is a kv.Store backed by BadgerDB. Badger provides snapshot
// isolation with optimistic conflict detection at commit.
type Store struct {
	db     *badger.DB
	gc     *gcRunner
	schema kv.Schema
	log    *slog.Logger
}

var _ kv.Store = (*Store)(nil)

// Open opens the database described by cfg and starts value log GC for
// persistent databases when cfg.GCInterval is positive.
func Open(cfg config.BadgerConfig, schema kv.Schema, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := openDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, schema: schema, log: logger.With("store", "badger")}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.gc = newGCRunner(db, cfg.GCInterval, cfg.GCDiscardRatio, s.log)
		s.gc.start()
	}
	return s, nil
}

// OpenInMemory opens an empty in-memory store for tests. Its log output
// is discarded.
func OpenInMemory(schema kv.Schema) (*Store, error) {
	return Open(config.BadgerConfig{InMemory: true}, schema, slog.New(slog.DiscardHandler))
}

// Begin starts a read-write transaction.
func (s *Store) Begin(ctx context.Context) (kv.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, kv.Wrap("begin", err)
	}
	if s.db.IsClosed() {
		return nil, kv.Wrap("begin", badger.ErrDBClosed)
	}
	return &tx{txn: s.db.NewTransaction(true), schema: s.schema}, nil
}

// Ping reports whether the database is open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return badger.ErrDBClosed
	}
	return nil
}

// Close stops GC and closes the database.
func (s *Store) Close() error {
	if s.gc != nil {
		s.gc.stop()
	}
	return s.db.Close()
}

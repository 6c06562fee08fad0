// Package kvrepotest opens throwaway stores for repository and service tests.
package kvrepotest

import (
	"log/slog"
	"testing"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/badger"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo"
	"github.com/heartmarshall/moviedb-backend/internal/config"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// NewStore opens an empty in-memory badger store with the application schema.
// Store and badger logs are discarded.
func NewStore(t *testing.T) kv.Store {
	t.Helper()

	s, err := badger.Open(config.BadgerConfig{InMemory: true}, kvrepo.Schema, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("kvrepotest: open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// NewTxManager returns a TxManager over a fresh in-memory store.
func NewTxManager(t *testing.T) *kv.TxManager {
	t.Helper()
	return kv.NewTxManager(NewStore(t))
}

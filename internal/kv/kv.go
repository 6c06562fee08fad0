// Package kv defines the transactional key-value contract the repositories
// are written against, and the TxManager that scopes one transaction to one
// service operation.
package kv

import (
	"context"
	"strings"
)

// Key addresses a single row. Clustering is empty for collections keyed by
// partition alone (movies, users).
type Key struct {
	Collection string
	Partition  string
	Clustering string
}

func (k Key) String() string {
	if k.Clustering == "" {
		return k.Collection + "/" + k.Partition
	}
	return k.Collection + "/" + k.Partition + "/" + k.Clustering
}

// Validate rejects keys the substrates cannot encode.
func (k Key) Validate() error {
	if k.Collection == "" || k.Partition == "" {
		return ErrInvalidKey
	}
	if strings.ContainsRune(k.Collection, 0) || strings.ContainsRune(k.Partition, 0) ||
		strings.ContainsRune(k.Clustering, 0) {
		return ErrInvalidKey
	}
	return nil
}

// Row is a key plus its text attributes. Attrs may be nil for rows whose
// existence is the whole payload (list memberships, friend edges).
type Row struct {
	Key   Key
	Attrs map[string]string
}

// Attr returns the attribute value or "" when absent.
func (r Row) Attr(name string) string {
	if r.Attrs == nil {
		return ""
	}
	return r.Attrs[name]
}

// Schema declares which attributes of a collection carry a secondary index.
// Substrates keep index entries in step with Put and Delete.
type Schema map[string][]string

// Indexed reports whether attr is indexed in collection.
func (s Schema) Indexed(collection, attr string) bool {
	for _, a := range s[collection] {
		if a == attr {
			return true
		}
	}
	return false
}

// Store opens transactions against a substrate. Implementations are safe
// for concurrent use.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
	Close() error
}

// Tx is a snapshot-isolated transaction. Reads observe the transaction's own
// buffered writes. Scan results carry no ordering guarantee.
// Every error returned by a Tx method is a *StorageError.
type Tx interface {
	Get(ctx context.Context, key Key) (Row, bool, error)
	Put(ctx context.Context, row Row) error
	Delete(ctx context.Context, key Key) error
	Scan(ctx context.Context, collection, partition string) ([]Row, error)
	ScanIndex(ctx context.Context, collection, attr, value string) ([]Row, error)
	ScanAll(ctx context.Context, collection string) ([]Row, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

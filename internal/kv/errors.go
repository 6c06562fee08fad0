package kv

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

var (
	// ErrConflict is returned by Commit when a concurrent transaction wrote
	// a row this transaction read. Callers are not retried.
	ErrConflict = errors.New("transaction conflict")
	// ErrNoTx is returned by repositories invoked outside RunInTx.
	ErrNoTx = errors.New("no transaction in context")
	// ErrNestedTx is returned by RunInTx when ctx already carries a transaction.
	ErrNestedTx = errors.New("nested transaction")
	// ErrInvalidKey is returned for keys with empty or unencodable components.
	ErrInvalidKey = errors.New("invalid key")
	// ErrUnknownIndex is returned by ScanIndex for an attribute the schema does not index.
	ErrUnknownIndex = errors.New("unknown index")
)

// StorageError wraps a substrate failure. It matches both domain.ErrStorage
// and the underlying cause under errors.Is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("kv %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{domain.ErrStorage, e.Err}
}

// Wrap returns err as a *StorageError for op. nil stays nil and an existing
// *StorageError is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

package kv

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TxManager runs service operations inside a single store transaction,
// passing the transaction through the context.
type TxManager struct {
	store Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store Store) *TxManager {
	return &TxManager{store: store}
}

// RunInTx executes fn within a transaction.
// On success: commits. A commit conflict is returned as a *StorageError
// matching ErrConflict.
// On error from fn: rolls back and returns fn's error unchanged.
// On panic from fn: rolls back and re-panics.
// Calling RunInTx with a ctx that already carries a transaction returns ErrNestedTx.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, txErr := TxFromCtx(ctx); txErr == nil {
		return ErrNestedTx
	}

	start := time.Now()
	result := resultError
	defer func() {
		txTotal.WithLabelValues(result).Inc()
		txDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	tx, err := m.store.Begin(ctx)
	if err != nil {
		return Wrap("begin", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			result = resultRollback
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", Wrap("rollback", rbErr), err)
		}
		result = resultRollback
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, ErrConflict) {
			result = resultConflict
		}
		return fmt.Errorf("commit transaction: %w", Wrap("commit", err))
	}

	result = resultCommit
	return nil
}

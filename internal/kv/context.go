package kv

import "context"

type txCtxKey struct{}

func withTx(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// TxFromCtx returns the transaction opened by RunInTx.
// Repositories call it on every operation so no read or write can happen
// outside a transaction.
func TxFromCtx(ctx context.Context) (Tx, error) {
	if tx, ok := ctx.Value(txCtxKey{}).(Tx); ok {
		return tx, nil
	}
	return nil, ErrNoTx
}

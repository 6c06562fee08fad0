package kv

import "context"

type storeMock struct {
	BeginFunc func(ctx context.Context) (Tx, error)
}

func (m *storeMock) Begin(ctx context.Context) (Tx, error) { return m.BeginFunc(ctx) }
func (m *storeMock) Ping(context.Context) error             { return nil }
func (m *storeMock) Close() error                           { return nil }

// txMock records which terminal call was made.
type txMock struct {
	CommitErr   error
	RollbackErr error

	committed  bool
	rolledBack bool
}

func (m *txMock) Get(context.Context, Key) (Row, bool, error)     { return Row{}, false, nil }
func (m *txMock) Put(context.Context, Row) error                  { return nil }
func (m *txMock) Delete(context.Context, Key) error               { return nil }
func (m *txMock) Scan(context.Context, string, string) ([]Row, error) { return nil, nil }
func (m *txMock) ScanIndex(context.Context, string, string, string) ([]Row, error) {
	return nil, nil
}
func (m *txMock) ScanAll(context.Context, string) ([]Row, error) { return nil, nil }

func (m *txMock) Commit(context.Context) error {
	m.committed = true
	return m.CommitErr
}

func (m *txMock) Rollback(context.Context) error {
	m.rolledBack = true
	return m.RollbackErr
}

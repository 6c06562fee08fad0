// Package kvtest holds the behavioural contract every kv.Store substrate
// must satisfy. Substrate packages run it from their own tests.
package kvtest

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Schema is the schema stores under test must be opened with.
var Schema = kv.Schema{"items": {"tag"}}

// NewStoreFunc opens an empty store for one subtest.
type NewStoreFunc func(t *testing.T, schema kv.Schema) kv.Store

// Run executes the contract suite. Subtests share nothing, so newStore is
// called once per subtest.
func Run(t *testing.T, newStore NewStoreFunc) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s kv.Store)
	}{
		{"PutGet", testPutGet},
		{"GetMissing", testGetMissing},
		{"Overwrite", testOverwrite},
		{"Delete", testDelete},
		{"ReadYourWrites", testReadYourWrites},
		{"RollbackDiscards", testRollbackDiscards},
		{"ScanPartition", testScanPartition},
		{"ScanAll", testScanAll},
		{"ScanIndex", testScanIndex},
		{"ScanIndexFollowsOverwrite", testScanIndexFollowsOverwrite},
		{"ScanUnknownIndex", testScanUnknownIndex},
		{"InvalidKey", testInvalidKey},
		{"ConcurrentInsertConflict", testConcurrentInsertConflict},
		{"SnapshotIsolation", testSnapshotIsolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, Schema)
			tt.fn(t, s)
		})
	}
}

func item(partition, clustering, tag string) kv.Row {
	return kv.Row{
		Key:   kv.Key{Collection: "items", Partition: partition, Clustering: clustering},
		Attrs: map[string]string{"tag": tag},
	}
}

func begin(t *testing.T, s kv.Store) kv.Tx {
	t.Helper()
	tx, err := s.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func put(t *testing.T, s kv.Store, rows ...kv.Row) {
	t.Helper()
	ctx := context.Background()
	tx := begin(t, s)
	for _, r := range rows {
		require.NoError(t, tx.Put(ctx, r))
	}
	require.NoError(t, tx.Commit(ctx))
}

func get(t *testing.T, s kv.Store, key kv.Key) (kv.Row, bool) {
	t.Helper()
	ctx := context.Background()
	tx := begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()
	row, ok, err := tx.Get(ctx, key)
	require.NoError(t, err)
	return row, ok
}

func clusterings(rows []kv.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key.Partition+"/"+r.Key.Clustering)
	}
	sort.Strings(out)
	return out
}

func testPutGet(t *testing.T, s kv.Store) {
	row := item("alice", "603", "scifi")
	put(t, s, row)

	got, ok := get(t, s, row.Key)
	require.True(t, ok)
	assert.Equal(t, row.Key, got.Key)
	assert.Equal(t, "scifi", got.Attr("tag"))
}

func testGetMissing(t *testing.T, s kv.Store) {
	_, ok := get(t, s, kv.Key{Collection: "items", Partition: "nobody", Clustering: "1"})
	assert.False(t, ok)
}

func testOverwrite(t *testing.T, s kv.Store) {
	put(t, s, item("alice", "603", "scifi"))
	put(t, s, item("alice", "603", "action"))

	got, ok := get(t, s, item("alice", "603", "").Key)
	require.True(t, ok)
	assert.Equal(t, "action", got.Attr("tag"))
}

func testDelete(t *testing.T, s kv.Store) {
	ctx := context.Background()
	row := item("alice", "603", "scifi")
	put(t, s, row)

	tx := begin(t, s)
	require.NoError(t, tx.Delete(ctx, row.Key))
	// Deleting an absent row is not an error.
	require.NoError(t, tx.Delete(ctx, item("alice", "999", "").Key))
	require.NoError(t, tx.Commit(ctx))

	_, ok := get(t, s, row.Key)
	assert.False(t, ok)
}

func testReadYourWrites(t *testing.T, s kv.Store) {
	ctx := context.Background()
	tx := begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()

	require.NoError(t, tx.Put(ctx, item("alice", "1", "a")))
	require.NoError(t, tx.Put(ctx, item("alice", "2", "b")))

	_, ok, err := tx.Get(ctx, item("alice", "1", "").Key)
	require.NoError(t, err)
	assert.True(t, ok)

	rows, err := tx.Scan(ctx, "items", "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/1", "alice/2"}, clusterings(rows))

	require.NoError(t, tx.Delete(ctx, item("alice", "1", "").Key))
	_, ok, err = tx.Get(ctx, item("alice", "1", "").Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testRollbackDiscards(t *testing.T, s kv.Store) {
	ctx := context.Background()
	tx := begin(t, s)
	require.NoError(t, tx.Put(ctx, item("alice", "603", "scifi")))
	require.NoError(t, tx.Rollback(ctx))

	_, ok := get(t, s, item("alice", "603", "").Key)
	assert.False(t, ok)
}

func testScanPartition(t *testing.T, s kv.Store) {
	put(t, s,
		item("alice", "1", "a"),
		item("alice", "2", "b"),
		item("alice2", "3", "c"),
		item("bob", "1", "a"),
	)

	ctx := context.Background()
	tx := begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Scan(ctx, "items", "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/1", "alice/2"}, clusterings(rows))

	rows, err = tx.Scan(ctx, "items", "carol")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func testScanAll(t *testing.T, s kv.Store) {
	put(t, s,
		item("alice", "1", "a"),
		item("bob", "2", "b"),
		kv.Row{Key: kv.Key{Collection: "other", Partition: "x"}},
	)

	ctx := context.Background()
	tx := begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.ScanAll(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/1", "bob/2"}, clusterings(rows))
}

func testScanIndex(t *testing.T, s kv.Store) {
	put(t, s,
		item("alice", "1", "scifi"),
		item("bob", "2", "scifi"),
		item("bob", "3", "drama"),
	)

	ctx := context.Background()
	tx := begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.ScanIndex(ctx, "items", "tag", "scifi")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/1", "bob/2"}, clusterings(rows))
	for _, r := range rows {
		assert.Equal(t, "scifi", r.Attr("tag"))
	}
}

func testScanIndexFollowsOverwrite(t *testing.T, s kv.Store) {
	ctx := context.Background()
	put(t, s, item("alice", "1", "scifi"), item("alice", "2", "scifi"))
	put(t, s, item("alice", "1", "drama"))

	tx := begin(t, s)
	require.NoError(t, tx.Delete(ctx, item("alice", "2", "").Key))
	require.NoError(t, tx.Commit(ctx))

	tx = begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.ScanIndex(ctx, "items", "tag", "scifi")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = tx.ScanIndex(ctx, "items", "tag", "drama")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/1"}, clusterings(rows))
}

func testScanUnknownIndex(t *testing.T, s kv.Store) {
	ctx := context.Background()
	tx := begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err := tx.ScanIndex(ctx, "items", "color", "red")
	assert.ErrorIs(t, err, kv.ErrUnknownIndex)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func testInvalidKey(t *testing.T, s kv.Store) {
	ctx := context.Background()
	tx := begin(t, s)
	defer func() { _ = tx.Rollback(ctx) }()

	err := tx.Put(ctx, kv.Row{Key: kv.Key{Collection: "items"}})
	assert.ErrorIs(t, err, kv.ErrInvalidKey)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

// testConcurrentInsertConflict models two check-then-insert operations on
// the same key. Exactly one may win; the loser sees ErrConflict either on
// its write or on commit.
func testConcurrentInsertConflict(t *testing.T, s kv.Store) {
	ctx := context.Background()
	key := item("alice", "603", "").Key

	tx1 := begin(t, s)
	tx2 := begin(t, s)

	_, ok, err := tx1.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = tx2.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tx1.Put(ctx, item("alice", "603", "first")))
	require.NoError(t, tx1.Commit(ctx))

	err = tx2.Put(ctx, item("alice", "603", "second"))
	if err == nil {
		err = tx2.Commit(ctx)
	} else {
		_ = tx2.Rollback(ctx)
	}
	assert.ErrorIs(t, err, kv.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrStorage)

	got, ok := get(t, s, key)
	require.True(t, ok)
	assert.Equal(t, "first", got.Attr("tag"))
}

func testSnapshotIsolation(t *testing.T, s kv.Store) {
	ctx := context.Background()
	put(t, s, item("alice", "1", "old"))

	reader := begin(t, s)
	defer func() { _ = reader.Rollback(ctx) }()
	// Pin the snapshot before the concurrent write.
	_, _, err := reader.Get(ctx, item("alice", "1", "").Key)
	require.NoError(t, err)

	put(t, s, item("alice", "1", "new"), item("alice", "2", "new"))

	got, ok, err := reader.Get(ctx, item("alice", "1", "").Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "old", got.Attr("tag"))

	_, ok, err = reader.Get(ctx, item("alice", "2", "").Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

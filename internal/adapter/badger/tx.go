package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

type tx struct {
	txn    *badger.Txn
	schema kv.Schema
}

func (t *tx) Get(ctx context.Context, key kv.Key) (kv.Row, bool, error) {
	if err := checkKey(ctx, key); err != nil {
		return kv.Row{}, false, kv.Wrap("get", err)
	}
	row, ok, err := t.get(key)
	if err != nil {
		return kv.Row{}, false, kv.Wrap("get", err)
	}
	return row, ok, nil
}

func (t *tx) Put(ctx context.Context, row kv.Row) error {
	if err := checkKey(ctx, row.Key); err != nil {
		return kv.Wrap("put", err)
	}
	for _, attr := range t.schema[row.Key.Collection] {
		if strings.Contains(row.Attr(attr), sep) {
			return kv.Wrap("put", fmt.Errorf("%w: indexed attribute %s", kv.ErrInvalidKey, attr))
		}
	}

	old, exists, err := t.get(row.Key)
	if err != nil {
		return kv.Wrap("put", err)
	}

	for _, attr := range t.schema[row.Key.Collection] {
		oldVal, newVal := old.Attr(attr), row.Attr(attr)
		if exists && oldVal != "" && oldVal != newVal {
			if err := t.txn.Delete(indexKey(row.Key, attr, oldVal)); err != nil {
				return kv.Wrap("put", err)
			}
		}
		if newVal != "" {
			if err := t.txn.Set(indexKey(row.Key, attr, newVal), nil); err != nil {
				return kv.Wrap("put", err)
			}
		}
	}

	val, err := json.Marshal(row.Attrs)
	if err != nil {
		return kv.Wrap("put", fmt.Errorf("encode attrs: %w", err))
	}
	if err := t.txn.Set(rowKey(row.Key), val); err != nil {
		return kv.Wrap("put", err)
	}
	return nil
}

func (t *tx) Delete(ctx context.Context, key kv.Key) error {
	if err := checkKey(ctx, key); err != nil {
		return kv.Wrap("delete", err)
	}

	old, exists, err := t.get(key)
	if err != nil {
		return kv.Wrap("delete", err)
	}
	if !exists {
		return nil
	}

	for _, attr := range t.schema[key.Collection] {
		if v := old.Attr(attr); v != "" {
			if err := t.txn.Delete(indexKey(key, attr, v)); err != nil {
				return kv.Wrap("delete", err)
			}
		}
	}
	if err := t.txn.Delete(rowKey(key)); err != nil {
		return kv.Wrap("delete", err)
	}
	return nil
}

func (t *tx) Scan(ctx context.Context, collection, partition string) ([]kv.Row, error) {
	if err := checkKey(ctx, kv.Key{Collection: collection, Partition: partition}); err != nil {
		return nil, kv.Wrap("scan", err)
	}
	rows, err := t.scanPrefix(partitionPrefix(collection, partition))
	if err != nil {
		return nil, kv.Wrap("scan", err)
	}
	return rows, nil
}

func (t *tx) ScanAll(ctx context.Context, collection string) ([]kv.Row, error) {
	if err := checkKey(ctx, kv.Key{Collection: collection, Partition: "*"}); err != nil {
		return nil, kv.Wrap("scan all", err)
	}
	rows, err := t.scanPrefix(collectionPrefix(collection))
	if err != nil {
		return nil, kv.Wrap("scan all", err)
	}
	return rows, nil
}

func (t *tx) ScanIndex(ctx context.Context, collection, attr, value string) ([]kv.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, kv.Wrap("scan index", err)
	}
	if !t.schema.Indexed(collection, attr) {
		return nil, kv.Wrap("scan index", fmt.Errorf("%w: %s.%s", kv.ErrUnknownIndex, collection, attr))
	}

	// A read-write txn allows one open iterator, so collect the row keys
	// before reading the rows.
	var keys []kv.Key
	it := t.txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
		Prefix:         indexPrefix(collection, attr, value),
	})
	for it.Rewind(); it.Valid(); it.Next() {
		if k, ok := parseIndexKey(it.Item().KeyCopy(nil)); ok {
			keys = append(keys, k)
		}
	}
	it.Close()

	rows := make([]kv.Row, 0, len(keys))
	for _, k := range keys {
		row, ok, err := t.get(k)
		if err != nil {
			return nil, kv.Wrap("scan index", err)
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (t *tx) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		t.txn.Discard()
		return kv.Wrap("commit", err)
	}
	if err := t.txn.Commit(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return kv.Wrap("commit", fmt.Errorf("%w: %v", kv.ErrConflict, err))
		}
		return kv.Wrap("commit", err)
	}
	return nil
}

func (t *tx) Rollback(context.Context) error {
	t.txn.Discard()
	return nil
}

func (t *tx) get(key kv.Key) (kv.Row, bool, error) {
	item, err := t.txn.Get(rowKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return kv.Row{}, false, nil
	}
	if err != nil {
		return kv.Row{}, false, err
	}

	row := kv.Row{Key: key}
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &row.Attrs)
	}); err != nil {
		return kv.Row{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return row, true, nil
}

func (t *tx) scanPrefix(prefix []byte) ([]kv.Row, error) {
	it := t.txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         prefix,
	})
	defer it.Close()

	var rows []kv.Row
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		key, ok := parseRowKey(item.KeyCopy(nil))
		if !ok {
			continue
		}
		row := kv.Row{Key: key}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &row.Attrs)
		}); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkKey(ctx context.Context, key kv.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return key.Validate()
}

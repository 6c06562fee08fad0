package badger

import (
	"bytes"
	"strings"

	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Key layout, components separated by 0x00:
//
//	d <collection> <partition> <clustering>                 JSON attrs
//	i <collection> <attr> <value> <partition> <clustering>  empty
const (
	sep      = "\x00"
	rowTag   = "d"
	indexTag = "i"
)

func join(parts ...string) []byte {
	return []byte(strings.Join(parts, sep))
}

func rowKey(k kv.Key) []byte {
	return join(rowTag, k.Collection, k.Partition, k.Clustering)
}

func partitionPrefix(collection, partition string) []byte {
	return join(rowTag, collection, partition, "")
}

func collectionPrefix(collection string) []byte {
	return join(rowTag, collection, "")
}

func indexKey(k kv.Key, attr, value string) []byte {
	return join(indexTag, k.Collection, attr, value, k.Partition, k.Clustering)
}

func indexPrefix(collection, attr, value string) []byte {
	return join(indexTag, collection, attr, value, "")
}

func parseRowKey(b []byte) (kv.Key, bool) {
	parts := bytes.Split(b, []byte(sep))
	if len(parts) != 4 || string(parts[0]) != rowTag {
		return kv.Key{}, false
	}
	return kv.Key{
		Collection: string(parts[1]),
		Partition:  string(parts[2]),
		Clustering: string(parts[3]),
	}, true
}

// parseIndexKey returns the row key an index entry points at.
func parseIndexKey(b []byte) (kv.Key, bool) {
	parts := bytes.Split(b, []byte(sep))
	if len(parts) != 6 || string(parts[0]) != indexTag {
		return kv.Key{}, false
	}
	return kv.Key{
		Collection: string(parts[1]),
		Partition:  string(parts[4]),
		Clustering: string(parts[5]),
	}, true
}

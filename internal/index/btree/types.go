package btree

import (
	"encoding/binary"

	"rowdb/internal/sql"
)

// Meta carries basic information about an index.
type Meta struct {
	TableName string // e.g. "users"
	Column    string // e.g. "id"
}

// bucket holds every row id sharing one key, in ascending order.
type bucket struct {
	key  sql.Value
	rids []uint64
}

func lessBucket(a, b *bucket) bool {
	return sql.Compare(a.key, b.key) < 0
}

// keyBytes is the bloom filter encoding of a key: one kind byte followed by
// the big-endian integer or the raw text.
func keyBytes(v sql.Value) []byte {
	switch v.Kind {
	case sql.KindInteger:
		buf := make([]byte, 9)
		buf[0] = byte(sql.KindInteger)
		binary.BigEndian.PutUint64(buf[1:], uint64(v.I64))
		return buf
	default:
		buf := make([]byte, 0, 1+len(v.S))
		buf = append(buf, byte(v.Kind))
		return append(buf, v.S...)
	}
}

package btree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bloom/v3"
	gbtree "github.com/google/btree"

	"rowdb/internal/sql"
)

const (
	// degree of the in-memory B-Tree holding the buckets.
	degree = 32

	// Bloom filter sizing per column. Past the estimate the false positive
	// rate degrades but lookups stay correct.
	bloomExpectedKeys  = 10000
	bloomFalsePositive = 0.01
)

// Index maps the values of one column to the ids of the rows holding them.
// Keys are kept in sql.Compare order; ids within a key in ascending order.
type Index interface {
	// Insert adds a mapping key -> rid.
	Insert(key sql.Value, rid uint64) error

	// Search returns all row ids for a key, or nil if there are none.
	Search(key sql.Value) []uint64

	// BucketSize returns how many row ids are stored under key.
	BucketSize(key sql.Value) int

	// Len returns the number of distinct keys.
	Len() int

	// Ascend calls fn for every key in order until fn returns false.
	Ascend(fn func(key sql.Value, rids []uint64) bool)

	Meta() Meta
}

// ErrDuplicate is returned when a row id is inserted twice under one key.
var ErrDuplicate = errors.New("btree: duplicate row id for key")

type memIndex struct {
	meta   Meta
	tree   *gbtree.BTreeG[*bucket]
	filter *bloom.BloomFilter
}

// New creates an empty in-memory index.
func New(meta Meta) Index {
	return &memIndex{
		meta:   meta,
		tree:   gbtree.NewG[*bucket](degree, lessBucket),
		filter: bloom.NewWithEstimates(bloomExpectedKeys, bloomFalsePositive),
	}
}

func (ix *memIndex) Meta() Meta { return ix.meta }

func (ix *memIndex) Insert(key sql.Value, rid uint64) error {
	b, ok := ix.tree.Get(&bucket{key: key})
	if !ok {
		b = &bucket{key: key}
		ix.tree.ReplaceOrInsert(b)
		ix.filter.Add(keyBytes(key))
	}

	// Row ids normally arrive in increasing order, so this is an append.
	pos, found := slices.BinarySearch(b.rids, rid)
	if found {
		return fmt.Errorf("%w: %s.%s = %v, row %d", ErrDuplicate, ix.meta.TableName, ix.meta.Column, key, rid)
	}
	b.rids = slices.Insert(b.rids, pos, rid)
	return nil
}

func (ix *memIndex) Search(key sql.Value) []uint64 {
	if !ix.filter.Test(keyBytes(key)) {
		return nil
	}
	b, ok := ix.tree.Get(&bucket{key: key})
	if !ok {
		return nil
	}
	return slices.Clone(b.rids)
}

func (ix *memIndex) BucketSize(key sql.Value) int {
	b, ok := ix.tree.Get(&bucket{key: key})
	if !ok {
		return 0
	}
	return len(b.rids)
}

func (ix *memIndex) Len() int {
	return ix.tree.Len()
}

func (ix *memIndex) Ascend(fn func(key sql.Value, rids []uint64) bool) {
	ix.tree.Ascend(func(b *bucket) bool {
		return fn(b.key, slices.Clone(b.rids))
	})
}

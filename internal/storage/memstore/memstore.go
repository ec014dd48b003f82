package memstore

import (
	"fmt"

	gbtree "github.com/google/btree"

	"rowdb/internal/index/btree"
	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

const degree = 32

type entry struct {
	id  storage.RowID
	row sql.Row
}

func lessEntry(a, b entry) bool { return a.id < b.id }

// Table is an in-memory table: rows are kept in a B-Tree ordered by RowID,
// and every column has a secondary index from value to row ids.
//
// Table is not safe for concurrent use.
type Table struct {
	name    string
	cols    []sql.Column
	rows    *gbtree.BTreeG[entry]
	indexes *btree.Manager
}

var _ storage.Table = (*Table)(nil)

// New creates an empty table with the given schema.
func New(name string, cols []sql.Column) *Table {
	schema := make([]sql.Column, len(cols))
	copy(schema, cols)
	return &Table{
		name:    name,
		cols:    schema,
		rows:    gbtree.NewG[entry](degree, lessEntry),
		indexes: btree.NewManager(name, schema),
	}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the schema.
func (t *Table) Columns() []sql.Column {
	out := make([]sql.Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// Len returns the number of stored rows.
func (t *Table) Len() int { return t.rows.Len() }

// validate checks arity first, then each value against its column's type.
func (t *Table) validate(row sql.Row) error {
	if len(row) != len(t.cols) {
		return &storage.SchemaError{Err: storage.ErrArityMismatch}
	}
	for i, col := range t.cols {
		if !row[i].Satisfies(col.Type) {
			return &storage.SchemaError{Column: col.Name, Err: storage.ErrTypeMismatch}
		}
	}
	return nil
}

// InsertRow validates row against the schema and stores it under id.
// Nothing is stored if validation fails or id is already taken.
func (t *Table) InsertRow(id storage.RowID, row sql.Row) error {
	if err := t.validate(row); err != nil {
		return err
	}
	if t.rows.Has(entry{id: id}) {
		return fmt.Errorf("%w: %d in table %s", storage.ErrDuplicateRowID, id, t.name)
	}

	// store a copy to avoid external modification
	stored := make(sql.Row, len(row))
	copy(stored, row)

	t.rows.ReplaceOrInsert(entry{id: id, row: stored})
	if err := t.indexes.InsertRow(uint64(id), stored); err != nil {
		// unreachable once the id check above passed
		return fmt.Errorf("index table %s: %w", t.name, err)
	}
	return nil
}

// positions resolves column names to schema offsets.
func (t *Table) positions(columns []string) ([]int, error) {
	pos := make([]int, len(columns))
	for i, name := range columns {
		idx := -1
		for j, c := range t.cols {
			if c.Name == name {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, &storage.ColumnNotFoundError{Column: name}
		}
		pos[i] = idx
	}
	return pos, nil
}

// Select projects the named columns from every row, in ascending id order.
func (t *Table) Select(columns []string) ([]sql.Row, error) {
	pos, err := t.positions(columns)
	if err != nil {
		return nil, err
	}

	out := make([]sql.Row, 0, t.rows.Len())
	t.rows.Ascend(func(e entry) bool {
		projected := make(sql.Row, len(pos))
		for i, p := range pos {
			projected[i] = e.row[p]
		}
		out = append(out, projected)
		return true
	})
	return out, nil
}

// Rows calls fn with a copy of every row in ascending id order until fn
// returns false.
func (t *Table) Rows(fn func(id storage.RowID, row sql.Row) bool) {
	t.rows.Ascend(func(e entry) bool {
		row := make(sql.Row, len(e.row))
		copy(row, e.row)
		return fn(e.id, row)
	})
}

func (t *Table) index(column string) (btree.Index, error) {
	idx, ok := t.indexes.Index(column)
	if !ok {
		return nil, &storage.ColumnNotFoundError{Column: column}
	}
	return idx, nil
}

// Lookup returns the ids of the rows whose column equals value, or nil.
func (t *Table) Lookup(column string, value sql.Value) ([]storage.RowID, error) {
	idx, err := t.index(column)
	if err != nil {
		return nil, err
	}
	rids := idx.Search(value)
	if len(rids) == 0 {
		return nil, nil
	}
	out := make([]storage.RowID, len(rids))
	for i, rid := range rids {
		out[i] = storage.RowID(rid)
	}
	return out, nil
}

// BucketSize reports how many rows hold value in column.
func (t *Table) BucketSize(column string, value sql.Value) (int, error) {
	idx, err := t.index(column)
	if err != nil {
		return 0, err
	}
	return idx.BucketSize(value), nil
}

package storage

import (
	"errors"
	"fmt"

	"rowdb/internal/sql"
)

// RowID identifies a row across the whole database. Ids are handed out by
// the database in strictly increasing order, starting at 1.
type RowID uint64

var (
	ErrArityMismatch  = errors.New("arity mismatch")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrColumnNotFound = errors.New("column not found")
	ErrDuplicateRowID = errors.New("duplicate row id")

	// ErrDuplicateValue marks a column given twice in one insert.
	ErrDuplicateValue = errors.New("duplicate value")
)

// SchemaError reports a row that does not fit a table's schema.
// Err is ErrArityMismatch, ErrTypeMismatch or ErrDuplicateValue; Column is
// set for the latter two.
type SchemaError struct {
	Column string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s for column %q", e.Err, e.Column)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ColumnNotFoundError reports a column name that is not part of the schema.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %s", e.Column)
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrColumnNotFound }

// Table is a single schema-checked row collection.
//
// Implementations:
//   - memstore: in-memory B-Tree keyed by RowID, with per-column indexes
type Table interface {
	Name() string
	Columns() []sql.Column

	// InsertRow validates row against the schema and stores it under id.
	// Nothing is stored if validation fails.
	InsertRow(id RowID, row sql.Row) error

	// Select projects the named columns from every row, in ascending id order.
	Select(columns []string) ([]sql.Row, error)

	// Rows calls fn for every row in ascending id order until fn returns false.
	Rows(fn func(id RowID, row sql.Row) bool)

	// Lookup returns the ids of the rows whose column equals value.
	Lookup(column string, value sql.Value) ([]RowID, error)

	// BucketSize reports how many rows hold value in column.
	BucketSize(column string, value sql.Value) (int, error)

	Len() int
}

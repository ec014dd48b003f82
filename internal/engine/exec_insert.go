package engine

import (
	"fmt"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

func (db *Database) executeInsert(c *sql.InsertCmd) (*Result, error) {
	t, err := db.lookup(c.Table)
	if err != nil {
		return nil, err
	}
	row, err := buildRow(t.Columns(), c)
	if err != nil {
		return nil, err
	}

	id, err := db.InsertRow(c.Table, row)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: ResultInserted, Table: t.Name(), RowID: id}, nil
}

// buildRow puts the command's values into schema order. The column list
// must name every column exactly once.
func buildRow(cols []sql.Column, c *sql.InsertCmd) (sql.Row, error) {
	if len(c.Columns) != len(cols) || len(c.Values) != len(c.Columns) {
		return nil, &storage.SchemaError{Err: storage.ErrArityMismatch}
	}

	// Map name -> index in table schema
	colIndex := make(map[string]int, len(cols))
	for i, col := range cols {
		colIndex[col.Name] = i
	}

	out := make(sql.Row, len(cols))
	seen := make([]bool, len(cols))

	for i, name := range c.Columns {
		pos, ok := colIndex[name]
		if !ok {
			return nil, &storage.ColumnNotFoundError{Column: name}
		}
		if seen[pos] {
			return nil, &storage.SchemaError{Column: name, Err: storage.ErrDuplicateValue}
		}
		v, err := c.Values[i].Value()
		if err != nil {
			return nil, fmt.Errorf("INSERT: column %q: %w", name, err)
		}
		out[pos] = v
		seen[pos] = true
	}
	return out, nil
}

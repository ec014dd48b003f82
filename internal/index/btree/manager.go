package btree

import (
	"fmt"

	"rowdb/internal/sql"
)

// Manager owns the secondary indexes of one table: one Index per column,
// in schema order.
type Manager struct {
	table   string
	columns []string
	open    map[string]Index // key: column name
}

// NewManager creates an empty index for every column of a table.
func NewManager(table string, cols []sql.Column) *Manager {
	m := &Manager{
		table:   table,
		columns: make([]string, len(cols)),
		open:    make(map[string]Index, len(cols)),
	}
	for i, c := range cols {
		m.columns[i] = c.Name
		m.open[c.Name] = New(Meta{TableName: table, Column: c.Name})
	}
	return m
}

// Index returns the index for a column.
func (m *Manager) Index(column string) (Index, bool) {
	idx, ok := m.open[column]
	return idx, ok
}

// InsertRow records rid under each of the row's values, column by column.
// The row must already match the schema the manager was built with.
func (m *Manager) InsertRow(rid uint64, row sql.Row) error {
	if len(row) != len(m.columns) {
		return fmt.Errorf("btree: row has %d values, index set has %d columns", len(row), len(m.columns))
	}
	for i, col := range m.columns {
		if err := m.open[col].Insert(row[i], rid); err != nil {
			return err
		}
	}
	return nil
}

package engine

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"v.io/x/lib/vlog"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
	"rowdb/internal/storage/memstore"
)

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrJoinUnsupported = errors.New("JOIN is not supported")
)

// CatalogError reports a table name the database does not know.
type CatalogError struct {
	Table string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("table not found: %s", e.Table)
}

func (e *CatalogError) Unwrap() error { return ErrTableNotFound }

// Database is the catalog: every table by case-folded name, plus the row id
// counter shared by all of them. Ids start at 1 and only advance when an
// insert succeeds.
//
// Database is not safe for concurrent use.
type Database struct {
	tables    map[string]*memstore.Table
	nextRowID storage.RowID
}

// New creates an empty database.
func New() *Database {
	return &Database{
		tables:    make(map[string]*memstore.Table),
		nextRowID: 1,
	}
}

// foldName is the single place table names are normalized; every catalog
// insert and lookup goes through it.
func foldName(name string) string {
	return cases.Lower(language.Und).String(name)
}

func (db *Database) lookup(name string) (*memstore.Table, error) {
	t, ok := db.tables[foldName(name)]
	if !ok {
		return nil, &CatalogError{Table: name}
	}
	return t, nil
}

// CreateTable stores a new empty table. An existing table with the same
// name (ignoring case) is replaced, rows and all.
func (db *Database) CreateTable(name string, cols []sql.Column) {
	key := foldName(name)
	if old, ok := db.tables[key]; ok {
		vlog.Infof("replacing table %s (%d rows dropped)", key, old.Len())
	}
	db.tables[key] = memstore.New(key, cols)
}

// InsertRow stores row in the named table under the next row id.
func (db *Database) InsertRow(table string, row sql.Row) (storage.RowID, error) {
	t, err := db.lookup(table)
	if err != nil {
		return 0, err
	}

	id := db.nextRowID
	if err := t.InsertRow(id, row); err != nil {
		return 0, err
	}
	db.nextRowID++
	return id, nil
}

// Select returns the named columns of every row in the table, in insertion
// order. "*" expands to every column in schema order.
func (db *Database) Select(table string, columns []string) ([]sql.Row, error) {
	t, err := db.lookup(table)
	if err != nil {
		return nil, err
	}
	items := make([]sql.SelectItem, len(columns))
	for i, c := range columns {
		items[i] = sql.SelectItem{Name: c, Wildcard: c == "*"}
	}
	return t.Select(expandColumns(t.Columns(), items))
}

// expandColumns replaces each wildcard with the full column list.
func expandColumns(schema []sql.Column, items []sql.SelectItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !it.Wildcard {
			out = append(out, it.Name)
			continue
		}
		for _, col := range schema {
			out = append(out, col.Name)
		}
	}
	return out
}

// TableNames returns the (folded) names of all tables, sorted.
func (db *Database) TableNames() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table returns the named table.
func (db *Database) Table(name string) (storage.Table, error) {
	t, err := db.lookup(name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// NextRowID returns the id the next successful insert will use.
func (db *Database) NextRowID() storage.RowID { return db.nextRowID }

package engine

import (
	"fmt"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

// ResultKind tells what a command did.
type ResultKind int

const (
	ResultCreated ResultKind = iota
	ResultInserted
	ResultRows
)

// Result is the outcome of one executed command.
type Result struct {
	Kind  ResultKind
	Table string

	// ResultInserted
	RowID storage.RowID

	// ResultRows
	Columns []string
	Rows    []sql.Row

	// Where holds the SELECT conditions. They are parsed and carried here
	// but not applied to Rows.
	Where []sql.Condition
}

// Mutating reports whether the command changed the database.
func (r *Result) Mutating() bool {
	return r.Kind == ResultCreated || r.Kind == ResultInserted
}

// Message is a one-line confirmation for non-query commands.
func (r *Result) Message() string {
	switch r.Kind {
	case ResultCreated:
		return fmt.Sprintf("table %s created", r.Table)
	case ResultInserted:
		return fmt.Sprintf("1 row inserted into %s (id %d)", r.Table, r.RowID)
	default:
		return fmt.Sprintf("%d row(s)", len(r.Rows))
	}
}

// Execute runs a parsed command against the database.
func (db *Database) Execute(cmd sql.Command) (*Result, error) {
	switch c := cmd.(type) {
	case *sql.CreateTableCmd:
		return db.executeCreate(c), nil

	case *sql.InsertCmd:
		return db.executeInsert(c)

	case *sql.SelectCmd:
		return db.executeSelect(c)

	default:
		return nil, fmt.Errorf("unsupported command type %T", cmd)
	}
}

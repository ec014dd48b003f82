package engine

import (
	"v.io/x/lib/vlog"

	"rowdb/internal/sql"
)

func (db *Database) executeSelect(c *sql.SelectCmd) (*Result, error) {
	if c.Join != nil {
		return nil, ErrJoinUnsupported
	}

	t, err := db.lookup(c.Table)
	if err != nil {
		return nil, err
	}

	cols := expandColumns(t.Columns(), c.Columns)
	rows, err := t.Select(cols)
	if err != nil {
		return nil, err
	}

	if len(c.Where) > 0 {
		vlog.VI(1).Infof("SELECT from %s: %d WHERE condition(s) not applied", t.Name(), len(c.Where))
	}

	return &Result{
		Kind:    ResultRows,
		Table:   t.Name(),
		Columns: cols,
		Rows:    rows,
		Where:   c.Where,
	}, nil
}

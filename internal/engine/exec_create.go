package engine

import (
	"rowdb/internal/sql"
)

func (db *Database) executeCreate(c *sql.CreateTableCmd) *Result {
	db.CreateTable(c.Name, c.Columns)
	return &Result{Kind: ResultCreated, Table: foldName(c.Name)}
}

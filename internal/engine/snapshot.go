package engine

import (
	"fmt"

	"v.io/x/lib/vlog"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
	"rowdb/internal/storage/filestore"
	"rowdb/internal/storage/memstore"
)

// Snapshot exports the whole database: every table with its rows, and the
// row id counter. Tables are ordered by name.
func (db *Database) Snapshot() *filestore.Snapshot {
	tables := make([]filestore.TableData, 0, len(db.tables))
	for _, name := range db.TableNames() {
		t := db.tables[name]
		rows := make([]filestore.RowData, 0, t.Len())
		t.Rows(func(id storage.RowID, row sql.Row) bool {
			rows = append(rows, filestore.RowData{ID: id, Values: row})
			return true
		})
		tables = append(tables, filestore.TableData{
			Name:    name,
			Columns: t.Columns(),
			Rows:    rows,
		})
	}
	return filestore.New(uint64(db.nextRowID), tables)
}

// Restore replaces the database contents with snap. Every row is checked
// against its table schema and indexed again. On error the database is
// left as it was.
func (db *Database) Restore(snap *filestore.Snapshot) error {
	if snap.NextRowID == 0 {
		return fmt.Errorf("restore: next row id must be at least 1")
	}

	tables := make(map[string]*memstore.Table, len(snap.Tables))
	owner := make(map[storage.RowID]string) // row ids are unique database-wide
	for _, td := range snap.Tables {
		key := foldName(td.Name)
		if _, dup := tables[key]; dup {
			return fmt.Errorf("restore: duplicate table %q", key)
		}

		t := memstore.New(key, td.Columns)
		for _, r := range td.Rows {
			if uint64(r.ID) >= snap.NextRowID {
				return fmt.Errorf("restore: row id %d in table %s is not below next row id %d",
					r.ID, key, snap.NextRowID)
			}
			if other, dup := owner[r.ID]; dup {
				return fmt.Errorf("restore: row id %d in table %s is already used by table %s", r.ID, key, other)
			}
			owner[r.ID] = key
			if err := t.InsertRow(r.ID, r.Values); err != nil {
				return fmt.Errorf("restore: table %s row %d: %w", key, r.ID, err)
			}
		}
		tables[key] = t
	}

	db.tables = tables
	db.nextRowID = storage.RowID(snap.NextRowID)
	return nil
}

// Open loads the database stored at path, or returns an empty database if
// there is no file yet.
func Open(path string) (*Database, error) {
	db := New()

	ok, err := filestore.Exists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		vlog.Infof("no snapshot at %s, starting empty", path)
		return db, nil
	}

	snap, err := filestore.Load(path)
	if err != nil {
		return nil, err
	}
	if err := db.Restore(snap); err != nil {
		return nil, err
	}
	vlog.Infof("loaded snapshot %s from %s: %d table(s), next row id %d",
		snap.ID, path, len(snap.Tables), snap.NextRowID)
	return db, nil
}

// Save writes the whole database to path.
func (db *Database) Save(path string) error {
	snap := db.Snapshot()
	if err := filestore.Save(path, snap); err != nil {
		return err
	}
	vlog.VI(1).Infof("saved snapshot %s to %s", snap.ID, path)
	return nil
}

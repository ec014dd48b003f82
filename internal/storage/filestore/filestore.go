package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

// FormatVersion is the snapshot layout written by Save.
const FormatVersion = 1

var (
	ErrVersion = errors.New("filestore: unsupported snapshot version")
	ErrCorrupt = errors.New("filestore: snapshot hash mismatch")
)

// Snapshot is the whole database state as stored on disk.
//
// Layout (JSON):
//
//	version:     format version
//	id:          random UUID, new for every snapshot
//	created_at:  RFC 3339 timestamp
//	hash:        hex SHA-256 of the JSON encoding of {next_row_id, tables}
//	next_row_id: id the next inserted row will get
//	tables:      [{name, columns: [{name, type}], rows: [{id, values}]}]
//
// Indexes are not stored; they are rebuilt from the rows on load.
type Snapshot struct {
	Version   int         `json:"version"`
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Hash      string      `json:"hash"`
	NextRowID uint64      `json:"next_row_id"`
	Tables    []TableData `json:"tables"`
}

// TableData is one table inside a snapshot.
type TableData struct {
	Name    string       `json:"name"`
	Columns []sql.Column `json:"columns"`
	Rows    []RowData    `json:"rows"`
}

// RowData is one stored row together with its id.
type RowData struct {
	ID     storage.RowID `json:"id"`
	Values sql.Row       `json:"values"`
}

// payload is the hashed part of a snapshot.
type payload struct {
	NextRowID uint64      `json:"next_row_id"`
	Tables    []TableData `json:"tables"`
}

// New returns a snapshot with a fresh id and creation time. The hash is
// filled in by Save.
func New(nextRowID uint64, tables []TableData) *Snapshot {
	return &Snapshot{
		Version:   FormatVersion,
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		NextRowID: nextRowID,
		Tables:    tables,
	}
}

func (s *Snapshot) computeHash() (string, error) {
	data, err := json.Marshal(payload{NextRowID: s.NextRowID, Tables: s.Tables})
	if err != nil {
		return "", fmt.Errorf("filestore: encode payload: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Save writes the snapshot to path. The data goes to a temp file in the
// same directory first and is renamed over path once complete, so a crash
// leaves either the old or the new snapshot.
func Save(path string, snap *Snapshot) error {
	hash, err := snap.computeHash()
	if err != nil {
		return err
	}
	snap.Hash = hash

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("filestore: write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("filestore: sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("filestore: close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("filestore: rename snapshot: %w", err)
	}
	return nil
}

// Load reads and verifies the snapshot stored at path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("filestore: read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("filestore: decode snapshot %s: %w", path, err)
	}
	if snap.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, snap.Version)
	}

	hash, err := snap.computeHash()
	if err != nil {
		return nil, err
	}
	if hash != snap.Hash {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, path)
	}
	return &snap, nil
}

// Exists reports whether a snapshot file is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("filestore: stat %s: %w", path, err)
}

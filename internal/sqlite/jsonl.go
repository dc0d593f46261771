package sqlite

import (
	"bufio"
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// maxRecordSize bounds one JSONL line; entity payloads can be long.
const maxRecordSize = 4 << 20

// readJSONL returns the valid JSON lines of path. Blank and malformed lines
// are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out []json.RawMessage
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxRecordSize)
	for sc.Scan() {
		if line := sc.Bytes(); len(line) > 0 && json.Valid(line) {
			out = append(out, json.RawMessage(bytes.Clone(line)))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return out, nil
}

// writeJSONL replaces path with one record per line. The records go to a
// temporary file in the same directory, which is synced and renamed over
// path, so readers never see a partial file.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		w.Write(rec)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	return nil
}

// Export writes every object of the drawing, erased ones included, to path
// as one JSON record per line in handle order.
// Returns ErrTransactionActive while a transaction is open.
func (b *Backend) Export(path string) (int, error) {
	db, err := b.idle()
	if err != nil {
		return 0, err
	}
	rows, err := db.Query("SELECT handle FROM objects ORDER BY handle")
	if err != nil {
		return 0, fmt.Errorf("listing objects: %w", err)
	}
	var handles []types.Handle
	for rows.Next() {
		var h types.Handle
		if err := rows.Scan(&h); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning handle: %w", err)
		}
		handles = append(handles, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(handles))
	for _, h := range handles {
		r, err := selectRow(db, h)
		if err != nil {
			return 0, err
		}
		data, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("marshaling object %s: %w", h, err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	b.log.Info("drawing exported", "path", path, "objects", len(records))
	return len(records), nil
}

// Import replaces the drawing with the records in path. Every record must
// name a registered class and the file must hold the header at types.Root;
// otherwise nothing changes.
func (b *Backend) Import(path string) (int, error) {
	db, err := b.idle()
	if err != nil {
		return 0, err
	}
	raw, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	rows := make([]*objectRow, 0, len(raw))
	hasRoot := false
	for _, rec := range raw {
		var r objectRow
		if err := json.Unmarshal(rec, &r); err != nil {
			return 0, fmt.Errorf("decoding record: %w", err)
		}
		if _, err := hydrate(&r); err != nil {
			return 0, err
		}
		if r.Handle == types.Root {
			hasRoot = true
		}
		rows = append(rows, &r)
	}
	if !hasRoot {
		return 0, fmt.Errorf("%s has no header record: %w", path, types.ErrInvalidArgument)
	}

	if err := replaceObjects(db, rows); err != nil {
		return 0, err
	}
	b.resetClasses()
	b.log.Info("drawing imported", "path", path, "objects", len(rows))
	return len(rows), nil
}

func replaceObjects(db *sql.DB, rows []*objectRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM objects"); err != nil {
		return fmt.Errorf("clearing objects: %w", err)
	}
	for _, r := range rows {
		if r.Handle.IsNull() {
			return fmt.Errorf("record of class %s has a null handle: %w", r.Class, types.ErrInvalidHandle)
		}
		if _, err := insertRow(tx, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// idle returns the database when the backend is attached and no
// transaction is open.
func (b *Backend) idle() (*sql.DB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if b.active != nil {
		return nil, types.ErrTransactionActive
	}
	return b.db, nil
}

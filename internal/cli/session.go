package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/drafts/pkg/sqlite"
	"github.com/mesh-intelligence/drafts/pkg/drafts"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// openDatabase opens a session on the resolved store. The caller must
// Close it.
func (a *app) openDatabase() (*drafts.Database, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, err
	}
	db, err := drafts.OpenDir(dataDir, drafts.WithLogger(a.log))
	if err != nil {
		return nil, sysErr(fmt.Errorf("open drawing in %s: %w", dataDir, err))
	}
	return db, nil
}

// attachBackend attaches the store directly, for commands that work on the
// whole object table. The caller must Detach it.
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, err
	}
	b, err := sqlite.Open(dataDir, sqlite.WithLogger(a.log))
	if err != nil {
		return nil, sysErr(fmt.Errorf("attach store in %s: %w", dataDir, err))
	}
	return b, nil
}

// withSession runs fn in a session and commits when fn succeeds.
func (a *app) withSession(fn func(db *drafts.Database) error) error {
	db, err := a.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return err
	}
	if err := db.Commit(); err != nil {
		return sysErr(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// objectView is the printed form of a drawing object.
type objectView struct {
	Handle string          `json:"handle"`
	Class  string          `json:"class"`
	Name   string          `json:"name,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

func viewOf(obj types.Object) (objectView, error) {
	v := objectView{Handle: obj.Handle().String(), Class: obj.ClassName()}
	if n, ok := obj.(types.Named); ok {
		v.Name = n.EntryName()
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return v, fmt.Errorf("encoding %s: %w", obj.ClassName(), err)
	}
	v.Data = data
	return v, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printObjects writes objects one per line, or as a JSON array.
func (a *app) printObjects(w io.Writer, objs []types.Object) error {
	views := make([]objectView, 0, len(objs))
	for _, obj := range objs {
		v, err := viewOf(obj)
		if err != nil {
			return err
		}
		views = append(views, v)
	}
	if a.jsonMode {
		return printJSON(w, views)
	}
	for _, v := range views {
		if v.Name != "" {
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.Handle, v.Class, v.Name)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", v.Handle, v.Class)
	}
	return nil
}

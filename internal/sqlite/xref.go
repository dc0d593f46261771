package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// BindXrefs turns each reference into a local block. Dependent symbols are
// renamed to "name" when insertWithoutPrefixes is set; a local symbol of
// that name already present wins and the dependent is erased. Otherwise
// they become "block$N$name" with the lowest free N.
func (t *Transaction) BindXrefs(blocks []types.Handle, insertWithoutPrefixes bool) error {
	for _, h := range blocks {
		xb, err := t.xrefBlock(h)
		if err != nil {
			return err
		}
		block := xb.EntryName()
		deps, err := t.dependents(block)
		if err != nil {
			return err
		}
		for _, d := range deps {
			if err := t.bindDependent(d, block, insertWithoutPrefixes); err != nil {
				return err
			}
		}
		xb.MakeLocal()
		t.backend.log.Debug("xref bound", "block", block, "dependents", len(deps), "insert", insertWithoutPrefixes)
	}
	return t.flush()
}

func (t *Transaction) bindDependent(h types.Handle, block string, insert bool) error {
	obj, err := t.GetObject(h, types.ForWrite)
	if err != nil {
		return err
	}
	n, ok := obj.(types.Named)
	if !ok {
		return fmt.Errorf("dependent %s: %w", h, types.ErrNotContainer)
	}
	rest := strings.TrimPrefix(n.EntryName(), block+"|")

	if insert {
		taken, err := keyExists(t.tx, obj.OwnerHandle(), rest)
		if err != nil {
			return err
		}
		if taken {
			return obj.Base().Erase()
		}
		n.SetEntryName(rest)
		return t.flush()
	}

	for i := 0; ; i++ {
		name := fmt.Sprintf("%s$%d$%s", block, i, rest)
		taken, err := keyExists(t.tx, obj.OwnerHandle(), name)
		if err != nil {
			return err
		}
		if !taken {
			n.SetEntryName(name)
			return t.flush()
		}
	}
}

// DetachXref erases the reference block, its entities and its dependent
// symbols.
func (t *Transaction) DetachXref(block types.Handle) error {
	xb, err := t.xrefBlock(block)
	if err != nil {
		return err
	}
	deps, err := t.dependents(xb.EntryName())
	if err != nil {
		return err
	}
	members, err := selectMembers(t.tx, block)
	if err != nil {
		return err
	}

	doomed := make([]types.Handle, 0, len(members)+len(deps))
	for _, m := range members {
		doomed = append(doomed, m.handle)
	}
	doomed = append(doomed, deps...)
	for _, h := range doomed {
		obj, err := t.GetObject(h, types.ForWrite)
		if err != nil {
			return err
		}
		if err := obj.Base().Erase(); err != nil {
			return err
		}
	}
	if err := xb.Base().Erase(); err != nil {
		return err
	}
	t.backend.log.Debug("xref detached", "block", xb.EntryName(), "erased", len(doomed)+1)
	return t.flush()
}

// ReloadXrefs checks each referenced file again. Relative paths resolve
// against the data directory.
func (t *Transaction) ReloadXrefs(blocks []types.Handle) error {
	for _, h := range blocks {
		xb, err := t.xrefBlock(h)
		if err != nil {
			return err
		}
		path := xb.XrefPath()
		if !filepath.IsAbs(path) {
			path = filepath.Join(t.backend.DataDir(), path)
		}
		_, err = os.Stat(path)
		switch {
		case err == nil:
			xb.SetXrefStatus(types.XrefResolved)
		case errors.Is(err, os.ErrNotExist):
			xb.SetXrefStatus(types.XrefFileNotFound)
		default:
			return fmt.Errorf("reloading %s: %w", xb.EntryName(), err)
		}
		t.backend.log.Debug("xref reloaded", "block", xb.EntryName(), "status", xb.XrefStatus())
	}
	return t.flush()
}

// UnloadXrefs marks each reference unloaded.
func (t *Transaction) UnloadXrefs(blocks []types.Handle) error {
	for _, h := range blocks {
		xb, err := t.xrefBlock(h)
		if err != nil {
			return err
		}
		xb.SetXrefStatus(types.XrefUnloaded)
	}
	return t.flush()
}

// xrefBlock opens h for write and checks that it is an external reference.
func (t *Transaction) xrefBlock(h types.Handle) (types.XrefBlock, error) {
	obj, err := t.GetObject(h, types.ForWrite)
	if err != nil {
		return nil, err
	}
	xb, ok := obj.(types.XrefBlock)
	if !ok || !xb.IsXref() {
		return nil, fmt.Errorf("%s %s: %w", obj.ClassName(), h, types.ErrNotXref)
	}
	return xb, nil
}

// dependents lists the symbols a reference named block brought in.
func (t *Transaction) dependents(block string) ([]types.Handle, error) {
	if err := t.flush(); err != nil {
		return nil, err
	}
	return selectNamedWithPrefix(t.tx, block+"|")
}

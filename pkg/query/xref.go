package query

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// XRef is a facade over one block record that references an external
// drawing. Properties are read from and written to the record; each
// lifecycle operation is one store call for this block alone.
type XRef struct {
	scope *Scope
	block types.Handle
}

// NewXRef returns the facade for block. The block is checked when first
// used.
func NewXRef(scope *Scope, block types.Handle) *XRef {
	return &XRef{scope: scope, block: block}
}

// Handle returns the block record's handle.
func (x *XRef) Handle() types.Handle { return x.block }

func (x *XRef) record(mode types.OpenMode) (*records.BlockRecord, error) {
	tx, err := x.scope.Transaction()
	if err != nil {
		return nil, err
	}
	obj, err := tx.GetObject(x.block, mode)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*records.BlockRecord)
	if !ok {
		return nil, fmt.Errorf("handle %s is %s: %w", x.block, obj.ClassName(), types.ErrTypeMismatch)
	}
	if !b.IsXref() {
		return nil, fmt.Errorf("block %q: %w", b.Name, types.ErrNotXref)
	}
	return b, nil
}

// BlockName returns the block record's name.
func (x *XRef) BlockName() (string, error) {
	b, err := x.record(types.ForRead)
	if err != nil {
		return "", err
	}
	return b.Name, nil
}

// SetBlockName renames the block record.
func (x *XRef) SetBlockName(name string) error {
	if !types.IsValidName(name, false) {
		return fmt.Errorf("%q: %w", name, types.ErrInvalidName)
	}
	b, err := x.record(types.ForWrite)
	if err != nil {
		return err
	}
	b.SetEntryName(name)
	return nil
}

// FilePath returns the path of the referenced drawing.
func (x *XRef) FilePath() (string, error) {
	b, err := x.record(types.ForRead)
	if err != nil {
		return "", err
	}
	return b.Path, nil
}

// SetFilePath points the reference at another drawing. The reference is
// unresolved until the next Reload.
func (x *XRef) SetFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty xref path: %w", types.ErrInvalidArgument)
	}
	b, err := x.record(types.ForWrite)
	if err != nil {
		return err
	}
	b.Path = path
	b.Status = types.XrefUnresolved
	return nil
}

// Status returns the reference state.
func (x *XRef) Status() (types.XrefStatus, error) {
	b, err := x.record(types.ForRead)
	if err != nil {
		return types.XrefNotAnXref, err
	}
	return b.XrefStatus(), nil
}

// IsFromOverlayReference reports whether the reference is an overlay,
// which is not carried into drawings that reference this one.
func (x *XRef) IsFromOverlayReference() (bool, error) {
	b, err := x.record(types.ForRead)
	if err != nil {
		return false, err
	}
	return b.Overlay, nil
}

// IsFromAttachReference reports whether the reference is an attachment.
func (x *XRef) IsFromAttachReference() (bool, error) {
	overlay, err := x.IsFromOverlayReference()
	return !overlay && err == nil, err
}

// Bind makes the referenced definition part of this drawing.
func (x *XRef) Bind(insertWithoutPrefixes bool) error {
	op, err := x.scope.xrefOperator()
	if err != nil {
		return err
	}
	return op.BindXrefs([]types.Handle{x.block}, insertWithoutPrefixes)
}

// Detach removes the reference and everything it brought in.
func (x *XRef) Detach() error {
	op, err := x.scope.xrefOperator()
	if err != nil {
		return err
	}
	return op.DetachXref(x.block)
}

// Reload re-reads the referenced file.
func (x *XRef) Reload() error {
	op, err := x.scope.xrefOperator()
	if err != nil {
		return err
	}
	return op.ReloadXrefs([]types.Handle{x.block})
}

// Unload keeps the reference but stops displaying it.
func (x *XRef) Unload() error {
	op, err := x.scope.xrefOperator()
	if err != nil {
		return err
	}
	return op.UnloadXrefs([]types.Handle{x.block})
}

// XRefs yields a facade for every external reference in the block table.
func XRefs(scope *Scope) iter.Seq2[*XRef, error] {
	return func(yield func(*XRef, error) bool) {
		for b, err := range Blocks.View(scope).All() {
			if err != nil {
				yield(nil, err)
				return
			}
			if !b.IsXref() {
				continue
			}
			if !yield(NewXRef(scope, b.Handle()), nil) {
				return
			}
		}
	}
}

// AttachXref adds a block record named name referencing the drawing at
// path. An overlay reference is not carried into drawings that reference
// this one.
func AttachXref(scope *Scope, path, name string, overlay bool) (*XRef, error) {
	if path == "" {
		return nil, fmt.Errorf("empty xref path: %w", types.ErrInvalidArgument)
	}
	h, err := Blocks.View(scope).Add(records.NewXrefBlock(name, path, overlay))
	if err != nil {
		return nil, err
	}
	return NewXRef(scope, h), nil
}

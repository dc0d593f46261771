package query

import (
	"fmt"
	"reflect"

	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Binding configures the container view of one entity family: where the
// container sits in the drawing header, how it stores members and whether
// members must be screened by class.
type Binding[T types.Object] struct {
	Kind          Kind
	Heterogeneous bool
	// Field picks the container handle out of the header.
	Field func(h *records.Header) types.Handle
	// Current picks the current member, for families that have one.
	Current func(h *records.Header) types.Handle
}

// View returns the family's container view in scope.
func (b Binding[T]) View(scope *Scope) *Container[T] {
	c := NewContainer(scope, b.Kind, b.Locator(), NewDescriptor[T](b.Heterogeneous))
	if b.Current != nil {
		c.current = headerField(b.Current)
	}
	return c
}

// Locator returns the deferred lookup of the family's container.
func (b Binding[T]) Locator() Locator {
	return headerField(b.Field)
}

// Symbol tables.
var (
	Blocks     = Binding[*records.BlockRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.BlockTable }}
	Layers     = Binding[*records.LayerRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.LayerTable }}
	Linetypes  = Binding[*records.LinetypeRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.LinetypeTable }}
	TextStyles = Binding[*records.TextStyleRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.TextStyleTable }}
	DimStyles  = Binding[*records.DimStyleRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.DimStyleTable }}
	RegApps    = Binding[*records.RegAppRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.RegAppTable }}
	Ucss       = Binding[*records.UcsRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.UcsTable }}
	Views      = Binding[*records.ViewRecord]{Kind: SymbolTable, Field: func(h *records.Header) types.Handle { return h.ViewTable }}
	Viewports  = Binding[*records.ViewportRecord]{
		Kind:    SymbolTable,
		Field:   func(h *records.Header) types.Handle { return h.ViewportTable },
		Current: func(h *records.Header) types.Handle { return h.CurrentViewport },
	}
)

// Dictionaries.
var (
	Groups        = Binding[*records.Group]{Kind: Dictionary, Field: func(h *records.Header) types.Handle { return h.GroupDictionary }}
	Layouts       = Binding[*records.Layout]{Kind: Dictionary, Field: func(h *records.Header) types.Handle { return h.LayoutDictionary }}
	Materials     = Binding[*records.Material]{Kind: Dictionary, Field: func(h *records.Header) types.Handle { return h.MaterialDictionary }}
	MLeaderStyles = Binding[*records.MLeaderStyle]{Kind: Dictionary, Field: func(h *records.Header) types.Handle { return h.MLeaderStyleDictionary }}
)

// Layout blocks. Their members are entities of every class.
var (
	ModelSpace   = Binding[records.Entity]{Kind: Block, Field: func(h *records.Header) types.Handle { return h.ModelSpace }}
	PaperSpace   = Binding[records.Entity]{Kind: Block, Field: func(h *records.Header) types.Handle { return h.PaperSpace }}
	CurrentSpace = Binding[records.Entity]{Kind: Block, Field: func(h *records.Header) types.Handle { return h.CurrentSpace }}
)

// InBlock returns a view of the entities of class T in block. For a
// concrete T the view is filtered by class; for an interface T it holds
// every entity.
func InBlock[T records.Entity](scope *Scope, block Locator) *Container[T] {
	filter := reflect.TypeFor[T]().Kind() != reflect.Interface
	return NewContainer(scope, Block, block, NewDescriptor[T](filter))
}

// Header resolves the drawing header for read.
func Header(tx types.Transaction) (*records.Header, error) {
	obj, err := tx.GetObject(types.Root, types.ForRead)
	if err != nil {
		return nil, err
	}
	hdr, ok := obj.(*records.Header)
	if !ok {
		return nil, fmt.Errorf("root object is %s: %w", obj.ClassName(), types.ErrTypeMismatch)
	}
	return hdr, nil
}

func headerField(field func(*records.Header) types.Handle) Locator {
	return func(tx types.Transaction) (types.Handle, error) {
		hdr, err := Header(tx)
		if err != nil {
			return types.Null, err
		}
		h := field(hdr)
		if h.IsNull() {
			return types.Null, fmt.Errorf("drawing header has no such container: %w", types.ErrNotFound)
		}
		return h, nil
	}
}

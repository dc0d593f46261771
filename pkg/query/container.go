package query

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Kind is the storage shape of a container.
type Kind int

const (
	// SymbolTable containers hold uniquely named records of one class.
	SymbolTable Kind = iota
	// Dictionary containers map unique keys to objects.
	Dictionary
	// Block containers hold an ordered list of entities.
	Block
)

func (k Kind) String() string {
	switch k {
	case SymbolTable:
		return "symbol table"
	case Dictionary:
		return "dictionary"
	case Block:
		return "block"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Container is a typed, mutable view of one container's members. It holds
// no store resources; every call goes through the scope's transaction.
type Container[T types.Object] struct {
	*Sequence[T]

	scope   *Scope
	kind    Kind
	locate  Locator
	current Locator
	desc    Descriptor[T]
}

// NewContainer returns a view of the container found by locate.
func NewContainer[T types.Object](scope *Scope, kind Kind, locate Locator, desc Descriptor[T]) *Container[T] {
	return &Container[T]{
		Sequence: FromContainer[T](scope, locate, desc.Heterogeneous),
		scope:    scope,
		kind:     kind,
		locate:   locate,
		desc:     desc,
	}
}

// Kind returns the container's storage shape.
func (c *Container[T]) Kind() Kind { return c.kind }

// Descriptor returns the element descriptor.
func (c *Container[T]) Descriptor() Descriptor[T] { return c.desc }

// Handle locates the container.
func (c *Container[T]) Handle() (types.Handle, error) {
	tx, err := c.scope.Transaction()
	if err != nil {
		return types.Null, err
	}
	return c.locate(tx)
}

// Count returns the number of members in the view.
func (c *Container[T]) Count() (int, error) {
	n, err := c.LongCount()
	return int(n), err
}

// LongCount returns the number of members in the view. An unfiltered block
// is counted by the store; every other view counts handles without
// resolving them.
func (c *Container[T]) LongCount() (int64, error) {
	if c.kind == Block && !c.desc.Heterogeneous {
		tx, err := c.scope.Transaction()
		if err != nil {
			return 0, err
		}
		h, err := c.locate(tx)
		if err != nil {
			return 0, err
		}
		return tx.Count(h)
	}
	var n int64
	for _, err := range c.Handles() {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// Contains reports whether the container holds a member under name. A
// filtered view also requires the member to carry T's class.
func (c *Container[T]) Contains(name string) (bool, error) {
	if c.kind == SymbolTable && !types.IsValidName(name, true) {
		return false, nil
	}
	tx, h, err := c.lookup(name)
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.inView(tx, h)
}

// ContainsHandle reports whether member is a live member of the view.
func (c *Container[T]) ContainsHandle(member types.Handle) (bool, error) {
	tx, err := c.scope.Transaction()
	if err != nil {
		return false, err
	}
	h, err := c.locate(tx)
	if err != nil {
		return false, err
	}
	ok, err := tx.Contains(h, member)
	if err != nil || !ok {
		return false, err
	}
	return c.inView(tx, member)
}

// Item returns the member stored under name.
// Returns types.ErrNotFound if the view has no such member.
func (c *Container[T]) Item(name string) (T, error) {
	var zero T
	tx, h, err := c.lookup(name)
	if err != nil {
		return zero, err
	}
	ok, err := c.inView(tx, h)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("%q is not a %s: %w", name, c.desc.ClassName, types.ErrNotFound)
	}
	return c.resolve(h)
}

// Current returns the member the drawing marks as current. Only views
// with a current member support it.
func (c *Container[T]) Current() (T, error) {
	var zero T
	if c.current == nil {
		return zero, fmt.Errorf("current member of a %s: %w", c.kind, types.ErrUnsupported)
	}
	tx, err := c.scope.Transaction()
	if err != nil {
		return zero, err
	}
	h, err := c.current(tx)
	if err != nil {
		return zero, err
	}
	return c.resolve(h)
}

// AddOption configures Add and AddRange.
type AddOption func(*addOptions)

type addOptions struct {
	defaults bool
}

// WithDatabaseDefaults applies the drawing's current layer, linetype and
// color to each item before it is appended.
func WithDatabaseDefaults() AddOption {
	return func(o *addOptions) { o.defaults = true }
}

// Add appends item and returns the handle the store assigned.
func (c *Container[T]) Add(item T, opts ...AddOption) (types.Handle, error) {
	hs, err := c.AddRange([]T{item}, opts...)
	if err != nil {
		return types.Null, err
	}
	return hs[0], nil
}

// AddNamed appends item to a dictionary under key.
func (c *Container[T]) AddNamed(key string, item T, opts ...AddOption) (types.Handle, error) {
	if c.kind != Dictionary {
		return types.Null, fmt.Errorf("keyed add to a %s: %w", c.kind, types.ErrUnsupported)
	}
	hs, err := c.add([]string{key}, []T{item}, opts)
	if err != nil {
		return types.Null, err
	}
	return hs[0], nil
}

// AddRange appends items in order and returns their handles in the same
// order. Items are checked before the store is touched: a nil item, an item
// that already belongs to a container or an item given twice fails with
// types.ErrInvalidArgument. The container is opened for write once; each
// item is appended and then registered with the transaction. A store
// failure is returned unchanged along with the handles assigned so far.
func (c *Container[T]) AddRange(items []T, opts ...AddOption) ([]types.Handle, error) {
	return c.add(make([]string, len(items)), items, opts)
}

func (c *Container[T]) add(keys []string, items []T, opts []AddOption) ([]types.Handle, error) {
	var o addOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	tx, err := c.scope.Transaction()
	if err != nil {
		return nil, err
	}
	container, err := c.locate(tx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.GetObject(container, types.ForWrite); err != nil {
		return nil, err
	}

	handles := make([]types.Handle, 0, len(items))
	for i, item := range items {
		if o.defaults {
			if err := tx.SetDefaults(item); err != nil {
				return handles, err
			}
		}
		h, err := tx.Append(container, keys[i], item)
		if err != nil {
			return handles, err
		}
		if err := tx.AddNewlyCreated(item); err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func validateItems[T types.Object](items []T) error {
	seen := make(map[types.Object]bool, len(items))
	for i, item := range items {
		if isNil(item) {
			return fmt.Errorf("item %d is nil: %w", i, types.ErrInvalidArgument)
		}
		if !item.Base().IsNewObject() {
			return fmt.Errorf("item %d (%s %s): %w: %w", i, item.ClassName(), item.Handle(), types.ErrInvalidArgument, types.ErrAlreadyResident)
		}
		if seen[item] {
			return fmt.Errorf("item %d given twice: %w", i, types.ErrInvalidArgument)
		}
		seen[item] = true
	}
	return nil
}

func isNil(obj types.Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Create appends a blank element named name and returns it.
func (c *Container[T]) Create(name string, opts ...AddOption) (T, error) {
	var zero T
	if c.desc.New == nil {
		return zero, fmt.Errorf("creating %s: no factory: %w", c.desc.ClassName, types.ErrUnsupported)
	}
	item := c.desc.New()
	n, ok := any(item).(types.Named)
	if !ok {
		return zero, fmt.Errorf("creating %s: elements have no name: %w", c.desc.ClassName, types.ErrUnsupported)
	}
	n.SetEntryName(name)
	if _, err := c.Add(item, opts...); err != nil {
		return zero, err
	}
	return item, nil
}

// Clear erases every member of the view in order. Only block containers
// support it. It is not atomic: on failure, earlier members stay erased.
func (c *Container[T]) Clear() error {
	if c.kind != Block {
		return fmt.Errorf("clearing a %s: %w", c.kind, types.ErrUnsupported)
	}
	tx, err := c.scope.Transaction()
	if err != nil {
		return err
	}
	for h, err := range c.Handles() {
		if err != nil {
			return err
		}
		obj, err := tx.GetObject(h, types.ForWrite)
		if err != nil {
			return err
		}
		if err := obj.Base().Erase(); err != nil {
			return fmt.Errorf("erasing %s: %w", h, err)
		}
	}
	return nil
}

// lookup finds name in the container.
func (c *Container[T]) lookup(name string) (types.Transaction, types.Handle, error) {
	tx, err := c.scope.Transaction()
	if err != nil {
		return nil, types.Null, err
	}
	h, err := c.locate(tx)
	if err != nil {
		return nil, types.Null, err
	}
	m, err := tx.Lookup(h, name)
	if err != nil {
		return nil, types.Null, err
	}
	return tx, m, nil
}

// inView applies the class filter of a heterogeneous view to member.
func (c *Container[T]) inView(tx types.Transaction, member types.Handle) (bool, error) {
	if !c.desc.Heterogeneous {
		return true, nil
	}
	class, err := tx.ClassOf(member)
	if err != nil {
		return false, err
	}
	return MatchesClass(class, c.desc.ClassName), nil
}

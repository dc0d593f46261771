package query

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Locator finds a container inside the bound transaction. Locators that
// read the drawing header run only once the scope is materialized.
type Locator func(tx types.Transaction) (types.Handle, error)

// At locates a fixed handle.
func At(h types.Handle) Locator {
	return func(types.Transaction) (types.Handle, error) { return h, nil }
}

// Extractor converts one raw container member into the handle it names.
type Extractor func(member any) (types.Handle, error)

// MemberHandle is the default Extractor. It accepts bare handles and
// dictionary entries.
func MemberHandle(member any) (types.Handle, error) {
	switch m := member.(type) {
	case types.Handle:
		return m, nil
	case types.DictionaryEntry:
		return m.Value, nil
	default:
		return types.Null, fmt.Errorf("container member of type %T: %w", member, types.ErrTypeMismatch)
	}
}

// Sequence is a lazily resolved, restartable sequence of T. Each pass reads
// its source again and resolves every element through the scope's
// transaction in read mode.
type Sequence[T types.Object] struct {
	scope   *Scope
	source  func(tx types.Transaction) ([]any, error)
	extract Extractor
	// expected is the class members must carry; empty disables screening.
	expected string
	started  bool
}

// FromHandles returns a sequence over a fixed list of handles. With filter
// set, handles whose class is not T's are skipped.
func FromHandles[T types.Object](scope *Scope, handles []types.Handle, filter bool) *Sequence[T] {
	raw := make([]any, len(handles))
	for i, h := range handles {
		raw[i] = h
	}
	return newSequence[T](scope, func(types.Transaction) ([]any, error) { return raw, nil }, MemberHandle, filter)
}

// FromContainer returns a sequence over the members of a container. With
// filter set, members whose class is not T's are skipped.
func FromContainer[T types.Object](scope *Scope, container Locator, filter bool) *Sequence[T] {
	return FromContainerFunc[T](scope, container, MemberHandle, filter)
}

// FromContainerFunc is FromContainer for containers whose raw members need
// extract to become handles.
func FromContainerFunc[T types.Object](scope *Scope, container Locator, extract Extractor, filter bool) *Sequence[T] {
	source := func(tx types.Transaction) ([]any, error) {
		h, err := container(tx)
		if err != nil {
			return nil, err
		}
		return tx.Members(h)
	}
	return newSequence[T](scope, source, extract, filter)
}

func newSequence[T types.Object](scope *Scope, source func(types.Transaction) ([]any, error), extract Extractor, filter bool) *Sequence[T] {
	s := &Sequence[T]{scope: scope, source: source, extract: extract}
	if filter {
		s.expected = ClassNameFor[T]()
	}
	return s
}

// Started reports whether any pass has begun resolving an element. It never
// resets.
func (s *Sequence[T]) Started() bool { return s.started }

// Handles yields the handles a pass would resolve, in source order, without
// resolving them. The first error ends the pass.
func (s *Sequence[T]) Handles() iter.Seq2[types.Handle, error] {
	return func(yield func(types.Handle, error) bool) {
		tx, err := s.scope.Transaction()
		if err != nil {
			yield(types.Null, err)
			return
		}
		raw, err := s.source(tx)
		if err != nil {
			yield(types.Null, err)
			return
		}
		for _, m := range raw {
			h, err := s.extract(m)
			if err != nil {
				yield(types.Null, err)
				return
			}
			if s.expected != "" {
				class, err := tx.ClassOf(h)
				if err != nil {
					yield(types.Null, err)
					return
				}
				if !MatchesClass(class, s.expected) {
					continue
				}
			}
			if !yield(h, nil) {
				return
			}
		}
	}
}

// All yields every element, in source order. A handle that no longer
// resolves yields types.ErrInvalidHandle; an object that is not a T yields
// types.ErrTypeMismatch. Either error ends the pass.
func (s *Sequence[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for h, err := range s.Handles() {
			if err != nil {
				yield(zero, err)
				return
			}
			s.started = true
			v, err := s.resolve(h)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// resolve opens h for read and asserts it is a T.
func (s *Sequence[T]) resolve(h types.Handle) (T, error) {
	var zero T
	tx, err := s.scope.Transaction()
	if err != nil {
		return zero, err
	}
	obj, err := tx.GetObject(h, types.ForRead)
	if err != nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("handle %s is %s, not %s: %w", h, obj.ClassName(), ClassNameFor[T](), types.ErrTypeMismatch)
	}
	return v, nil
}

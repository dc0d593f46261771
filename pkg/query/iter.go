package query

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Where yields the elements of seq for which keep reports true. An error
// from keep ends the sequence.
func Where[T any](seq iter.Seq2[T, error], keep func(T) (bool, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v, err := range seq {
			if err != nil {
				yield(v, err)
				return
			}
			ok, err := keep(v)
			if err != nil {
				yield(v, err)
				return
			}
			if ok && !yield(v, nil) {
				return
			}
		}
	}
}

// Take yields at most n elements of seq. Elements past n are never
// resolved.
func Take[T any](seq iter.Seq2[T, error], n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for v, err := range seq {
			if !yield(v, err) || err != nil {
				return
			}
			i++
			if i == n {
				return
			}
		}
	}
}

// First returns the first element of seq.
// Returns types.ErrNotFound if seq is empty.
func First[T any](seq iter.Seq2[T, error]) (T, error) {
	for v, err := range seq {
		return v, err
	}
	var zero T
	return zero, fmt.Errorf("empty sequence: %w", types.ErrNotFound)
}

// OfType yields the elements of seq whose class is U's, as U.
func OfType[U types.Object, T types.Object](seq iter.Seq2[T, error]) iter.Seq2[U, error] {
	expected := ClassNameFor[U]()
	return func(yield func(U, error) bool) {
		var zero U
		for v, err := range seq {
			if err != nil {
				yield(zero, err)
				return
			}
			if !MatchesClass(v.ClassName(), expected) {
				continue
			}
			u, ok := any(v).(U)
			if !ok {
				yield(zero, fmt.Errorf("%s: %w", v.ClassName(), types.ErrTypeMismatch))
				return
			}
			if !yield(u, nil) {
				return
			}
		}
	}
}

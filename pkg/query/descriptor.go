package query

import (
	"reflect"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Descriptor tells a container view what its elements are.
type Descriptor[T types.Object] struct {
	// ClassName is the runtime class every element must carry when the
	// container is heterogeneous.
	ClassName string
	// New returns a blank element. It is nil when T is an interface.
	New func() T
	// Heterogeneous containers hold mixed classes, so members are screened
	// by class name before they are resolved.
	Heterogeneous bool
}

// NewDescriptor derives the descriptor of T once. For a pointer to a struct
// the factory allocates a zero value.
func NewDescriptor[T types.Object](heterogeneous bool) Descriptor[T] {
	d := Descriptor[T]{ClassName: ClassNameFor[T](), Heterogeneous: heterogeneous}
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		elem := t.Elem()
		d.New = func() T { return reflect.New(elem).Interface().(T) }
	}
	return d
}

// ClassNameFor returns types.ClassPrefix followed by T's type name, with
// any pointer removed: *records.LayerRecord gives "DbLayerRecord".
func ClassNameFor[T types.Object]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return types.ClassPrefix + t.Name()
}

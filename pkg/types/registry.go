package types

import (
	"fmt"
	"sort"
	"sync"
)

// ClassPrefix starts every runtime class name.
const ClassPrefix = "Db"

// Factory returns a blank instance of a registered class.
type Factory func() Object

var registry = struct {
	mu      sync.RWMutex
	classes map[string]Factory
}{classes: make(map[string]Factory)}

// RegisterClass associates a runtime class name with its factory. Record
// packages call it from init. Registering a name twice panics.
func RegisterClass(name string, f Factory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, dup := registry.classes[name]; dup {
		panic(fmt.Sprintf("types: class %q registered twice", name))
	}
	registry.classes[name] = f
}

// NewObject returns a blank instance of the named class.
// Returns ErrUnknownClass if the class was never registered.
func NewObject(name string) (Object, error) {
	registry.mu.RLock()
	f, ok := registry.classes[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("class %q: %w", name, ErrUnknownClass)
	}
	return f(), nil
}

// RegisteredClasses returns the registered class names in sorted order.
func RegisteredClasses() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.classes))
	for n := range registry.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

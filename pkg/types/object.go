package types

// Object is the contract every store-resident record satisfies. Concrete
// records embed ObjectBase for identity and open state and add their own
// exported, JSON-serialized fields.
type Object interface {
	// Handle returns the store-assigned handle, or Null for an object that
	// has not been appended to a container yet.
	Handle() Handle

	// OwnerHandle returns the handle of the owning container.
	OwnerHandle() Handle

	// ClassName returns the runtime class name, ClassPrefix plus the Go
	// type name (for example "DbLayerRecord").
	ClassName() string

	// IsErased reports whether the object has been erased.
	IsErased() bool

	// IsWriteEnabled reports whether the object is open for write.
	IsWriteEnabled() bool

	// Base exposes the embedded ObjectBase to stores.
	Base() *ObjectBase
}

// ObjectBase carries the identity and open state shared by all records.
// Only a store assigns handles; callers never set them.
type ObjectBase struct {
	handle Handle
	owner  Handle
	erased bool
	mode   OpenMode
}

// Handle returns the handle assigned by the store.
func (b *ObjectBase) Handle() Handle { return b.handle }

// OwnerHandle returns the handle of the owning container.
func (b *ObjectBase) OwnerHandle() Handle { return b.owner }

// IsErased reports whether the object has been erased.
func (b *ObjectBase) IsErased() bool { return b.erased }

// IsWriteEnabled reports whether the object is open for write.
func (b *ObjectBase) IsWriteEnabled() bool { return b.mode == ForWrite }

// IsNewObject reports whether the object has never been appended to a store.
func (b *ObjectBase) IsNewObject() bool { return b.handle.IsNull() && b.owner.IsNull() }

// Base returns b.
func (b *ObjectBase) Base() *ObjectBase { return b }

// Erase marks the object erased. The object must be open for write.
func (b *ObjectBase) Erase() error {
	if b.mode != ForWrite {
		return ErrNotOpenForWrite
	}
	if b.erased {
		return ErrInvalidHandle
	}
	b.erased = true
	return nil
}

// MakeResident records the handle and owner the store assigned.
func (b *ObjectBase) MakeResident(h, owner Handle) {
	b.handle = h
	b.owner = owner
}

// MakeTransient clears the store state of an object whose append was rolled
// back, so it can be appended again.
func (b *ObjectBase) MakeTransient() {
	*b = ObjectBase{}
}

// SetOpenMode records how the current transaction opened the object.
func (b *ObjectBase) SetOpenMode(m OpenMode) { b.mode = m }

// SetErased restores the erased flag when a store loads the object.
func (b *ObjectBase) SetErased(erased bool) { b.erased = erased }

// Named is implemented by records that live under a name in a symbol table
// or a dictionary.
type Named interface {
	Object
	EntryName() string
	SetEntryName(name string)
}

// MemberStyle describes how a container object stores its members.
type MemberStyle int

const (
	// ByHandle containers (block records) hold an ordered list of entities.
	ByHandle MemberStyle = iota
	// ByName containers (symbol tables) hold records with unique names.
	ByName
	// ByKey containers (dictionaries) map unique keys to arbitrary objects.
	ByKey
)

// ContainerObject is implemented by objects whose content is a collection
// of member handles.
type ContainerObject interface {
	Object
	MemberStyle() MemberStyle
	// Accepts reports whether obj may be appended to this container.
	Accepts(obj Object) bool
}

// DictionaryEntry is the raw member a ByKey container yields.
type DictionaryEntry struct {
	Key   string
	Value Handle
}

// Defaults are the drawing-wide property values applied to new entities.
type Defaults struct {
	Layer    string
	Linetype string
	Color    int
}

// DefaultsProvider is implemented by the drawing header.
type DefaultsProvider interface {
	Defaults() Defaults
}

// Defaultable is implemented by records that accept drawing defaults.
type Defaultable interface {
	SetDefaults(d Defaults)
}

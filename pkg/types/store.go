package types

// Store is a handle-addressed object store. Callers attach it to a backend,
// begin transactions against it, and detach when done.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent. An active transaction
	// is aborted.
	Detach() error

	// Begin starts a transaction. Only one transaction may be active at a
	// time; Begin returns ErrTransactionActive otherwise.
	Begin() (Transaction, error)
}

// Transaction scopes every read and write of object content. Objects opened
// through a transaction are only valid until it commits or aborts. Within one
// transaction a handle always resolves to the same in-memory object.
type Transaction interface {
	// ID identifies the transaction in logs.
	ID() string

	// GetObject resolves h. Returns ErrInvalidHandle if h is null, missing
	// or erased, and ErrNotRegistered if h was appended but never passed to
	// AddNewlyCreated.
	GetObject(h Handle, mode OpenMode) (Object, error)

	// Members opens container for read and returns its raw members in
	// container order: a Handle per member for ByHandle and ByName
	// containers, a DictionaryEntry per member for ByKey containers.
	Members(container Handle) ([]any, error)

	// Append adds a new object to container, which must be open for write
	// in this transaction. key names the entry in a ByKey container and is
	// ignored otherwise (ByName containers use the record's EntryName).
	// The object must then be registered with AddNewlyCreated.
	Append(container Handle, key string, obj Object) (Handle, error)

	// AddNewlyCreated registers an appended object with the transaction,
	// leaving it open for write.
	AddNewlyCreated(obj Object) error

	// Count returns the number of live members of container without
	// resolving them.
	Count(container Handle) (int64, error)

	// ClassOf returns the runtime class name stored for h without
	// resolving the object.
	ClassOf(h Handle) (string, error)

	// Lookup returns the member of container stored under name.
	// Returns ErrNotFound if there is none.
	Lookup(container Handle, name string) (Handle, error)

	// Contains reports whether member is a live member of container.
	Contains(container, member Handle) (bool, error)

	// SetDefaults applies the drawing defaults to obj if it accepts them.
	SetDefaults(obj Object) error

	// Commit persists every change and ends the transaction.
	Commit() error

	// Abort discards every change and ends the transaction. Idempotent.
	Abort() error
}

// XrefOperator is the store capability behind external reference lifecycle
// operations. Each call touches only the given block records.
type XrefOperator interface {
	// BindXrefs turns the references into local blocks. Dependent symbols
	// named "block|name" become "name" when insertWithoutPrefixes is true
	// and "block$0$name" otherwise.
	BindXrefs(blocks []Handle, insertWithoutPrefixes bool) error

	// DetachXref erases the reference block and its dependent symbols.
	DetachXref(block Handle) error

	// ReloadXrefs re-resolves the referenced files.
	ReloadXrefs(blocks []Handle) error

	// UnloadXrefs marks the references unloaded.
	UnloadXrefs(blocks []Handle) error
}

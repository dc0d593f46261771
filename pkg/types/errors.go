package types

import "errors"

// Resolution and query errors.
var (
	ErrInvalidHandle   = errors.New("invalid handle")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnsupported     = errors.New("operation not supported by container")
)

// Store operation errors.
var (
	ErrNotOpenForWrite   = errors.New("object is not open for write")
	ErrDuplicateName     = errors.New("duplicate entry name")
	ErrInvalidName       = errors.New("invalid entry name")
	ErrRejectedMember    = errors.New("container does not accept object")
	ErrAlreadyResident   = errors.New("object already belongs to a container")
	ErrNotRegistered     = errors.New("object was appended but not registered with the transaction")
	ErrNotContainer      = errors.New("object is not a container")
	ErrTransactionDone   = errors.New("transaction already ended")
	ErrTransactionActive = errors.New("another transaction is active")
	ErrUnknownClass      = errors.New("unknown class")
	ErrNotXref           = errors.New("block is not an external reference")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Handle is the opaque, stable identifier of a store-resident object.
// A Handle carries no data; it must be resolved through a Transaction.
// Two handles are equal exactly when they name the same object.
type Handle uint64

// Null is the zero Handle. No object is ever stored under it.
const Null Handle = 0

// Root is the handle of the drawing header, the first object of every store.
const Root Handle = 1

// IsNull reports whether h is the zero handle.
func (h Handle) IsNull() bool {
	return h == Null
}

// String formats the handle as upper-case hexadecimal.
func (h Handle) String() string {
	return strings.ToUpper(strconv.FormatUint(uint64(h), 16))
}

// ParseHandle parses the hexadecimal form produced by Handle.String.
func ParseHandle(s string) (Handle, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 64)
	if err != nil {
		return Null, fmt.Errorf("parsing handle %q: %w", s, ErrInvalidArgument)
	}
	return Handle(v), nil
}

// OpenMode selects how a Transaction opens an object.
type OpenMode int

// Open modes.
const (
	ForRead OpenMode = iota
	ForWrite
)

func (m OpenMode) String() string {
	switch m {
	case ForRead:
		return "read"
	case ForWrite:
		return "write"
	default:
		return fmt.Sprintf("OpenMode(%d)", int(m))
	}
}

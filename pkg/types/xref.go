package types

// XrefStatus classifies the state of an external reference.
type XrefStatus int

// Xref states.
const (
	XrefNotAnXref XrefStatus = iota
	XrefResolved
	XrefUnloaded
	XrefUnreferenced
	XrefFileNotFound
	XrefUnresolved
)

var xrefStatusNames = map[XrefStatus]string{
	XrefNotAnXref:    "not-an-xref",
	XrefResolved:     "resolved",
	XrefUnloaded:     "unloaded",
	XrefUnreferenced: "unreferenced",
	XrefFileNotFound: "file-not-found",
	XrefUnresolved:   "unresolved",
}

func (s XrefStatus) String() string {
	if n, ok := xrefStatusNames[s]; ok {
		return n
	}
	return "unknown"
}

// XrefBlock is implemented by block records that may reference an
// external drawing.
type XrefBlock interface {
	Named
	IsXref() bool
	XrefPath() string
	XrefStatus() XrefStatus
	SetXrefStatus(s XrefStatus)
	// MakeLocal turns the reference into an ordinary block.
	MakeLocal()
}

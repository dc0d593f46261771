package records

import (
	"strings"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Reserved block names.
const (
	ModelSpaceName = "*Model_Space"
	PaperSpaceName = "*Paper_Space"
)

// BlockRecord is a member of the block table and a container of entities.
// A block record with a path is an external reference.
type BlockRecord struct {
	SymbolRecord

	Origin  Point            `json:"origin"`
	Path    string           `json:"path,omitempty"`
	Status  types.XrefStatus `json:"status,omitempty"`
	Overlay bool             `json:"overlay,omitempty"`
}

// NewBlock returns a block definition named name.
func NewBlock(name string) *BlockRecord {
	return &BlockRecord{SymbolRecord: SymbolRecord{Name: name}}
}

// NewXrefBlock returns an unresolved external reference to path. An overlay
// reference is not carried into drawings that reference this one.
func NewXrefBlock(name, path string, overlay bool) *BlockRecord {
	return &BlockRecord{
		SymbolRecord: SymbolRecord{Name: name},
		Path:         path,
		Status:       types.XrefUnresolved,
		Overlay:      overlay,
	}
}

// ClassName returns "DbBlockRecord".
func (*BlockRecord) ClassName() string { return types.ClassPrefix + "BlockRecord" }

// MemberStyle returns types.ByHandle.
func (*BlockRecord) MemberStyle() types.MemberStyle { return types.ByHandle }

// Accepts reports whether obj is an entity.
func (*BlockRecord) Accepts(obj types.Object) bool {
	_, ok := obj.(Entity)
	return ok
}

// IsLayout reports whether the block backs model space or a paper space
// layout.
func (b *BlockRecord) IsLayout() bool {
	return b.Name == ModelSpaceName || strings.HasPrefix(b.Name, PaperSpaceName)
}

// IsXref reports whether the block references an external drawing.
func (b *BlockRecord) IsXref() bool { return b.Path != "" }

// XrefPath returns the referenced drawing path, or "" for a local block.
func (b *BlockRecord) XrefPath() string { return b.Path }

// XrefStatus returns the load status, or types.XrefNotAnXref for a local
// block.
func (b *BlockRecord) XrefStatus() types.XrefStatus {
	if !b.IsXref() {
		return types.XrefNotAnXref
	}
	return b.Status
}

// SetXrefStatus records a new load status.
func (b *BlockRecord) SetXrefStatus(s types.XrefStatus) { b.Status = s }

// MakeLocal turns a bound xref into an ordinary block.
func (b *BlockRecord) MakeLocal() {
	b.Path = ""
	b.Status = types.XrefNotAnXref
	b.Overlay = false
}

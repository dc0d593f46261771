package records

import "github.com/mesh-intelligence/drafts/pkg/types"

// Standard keys of the named object dictionary.
const (
	GroupDictionaryKey        = "GROUP"
	LayoutDictionaryKey       = "LAYOUT"
	MaterialDictionaryKey     = "MATERIAL"
	MLeaderStyleDictionaryKey = "MLEADERSTYLE"
)

// Dictionary maps unique keys to objects of any class.
type Dictionary struct {
	types.ObjectBase
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{}
}

// ClassName returns "DbDictionary".
func (*Dictionary) ClassName() string { return types.ClassPrefix + "Dictionary" }

// MemberStyle returns types.ByKey.
func (*Dictionary) MemberStyle() types.MemberStyle { return types.ByKey }

// Accepts reports true for every object except the drawing header.
func (*Dictionary) Accepts(obj types.Object) bool {
	_, header := obj.(*Header)
	return !header
}

// NamedEntry holds the name reported by records stored in dictionaries.
type NamedEntry struct {
	types.ObjectBase

	Name string `json:"name"`
}

// EntryName returns the dictionary key.
func (e *NamedEntry) EntryName() string { return e.Name }

// SetEntryName renames the entry.
func (e *NamedEntry) SetEntryName(name string) { e.Name = name }

// Group is a named selection set of entities.
type Group struct {
	NamedEntry

	Description string         `json:"description"`
	Selectable  bool           `json:"selectable"`
	Entities    []types.Handle `json:"entities,omitempty"`
}

// NewGroup returns an empty group.
func NewGroup(name, description string, selectable bool) *Group {
	return &Group{NamedEntry: NamedEntry{Name: name}, Description: description, Selectable: selectable}
}

// ClassName returns "DbGroup".
func (*Group) ClassName() string { return types.ClassPrefix + "Group" }

// Layout is a model or paper space layout backed by a block record.
type Layout struct {
	NamedEntry

	Block    types.Handle `json:"block"`
	TabOrder int          `json:"tab_order"`
}

// NewLayout returns a layout named name drawn from block.
func NewLayout(name string, block types.Handle, tabOrder int) *Layout {
	return &Layout{NamedEntry: NamedEntry{Name: name}, Block: block, TabOrder: tabOrder}
}

// ClassName returns "DbLayout".
func (*Layout) ClassName() string { return types.ClassPrefix + "Layout" }

// Material is a render material.
type Material struct {
	NamedEntry

	Description string `json:"description"`
}

// NewMaterial returns a material named name.
func NewMaterial(name, description string) *Material {
	return &Material{NamedEntry: NamedEntry{Name: name}, Description: description}
}

// ClassName returns "DbMaterial".
func (*Material) ClassName() string { return types.ClassPrefix + "Material" }

// MLeaderStyle is a multileader style.
type MLeaderStyle struct {
	NamedEntry

	ArrowSize  float64 `json:"arrow_size"`
	TextHeight float64 `json:"text_height"`
}

// NewMLeaderStyle returns a multileader style named name.
func NewMLeaderStyle(name string) *MLeaderStyle {
	return &MLeaderStyle{NamedEntry: NamedEntry{Name: name}, ArrowSize: 0.18, TextHeight: 0.18}
}

// ClassName returns "DbMLeaderStyle".
func (*MLeaderStyle) ClassName() string { return types.ClassPrefix + "MLeaderStyle" }

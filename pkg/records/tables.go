package records

import (
	"strings"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// SymbolTable is a homogeneous container of named records of one class.
type SymbolTable struct {
	types.ObjectBase

	// RecordClass is the class name every member must carry.
	RecordClass string `json:"record_class"`
}

// NewSymbolTable returns a table holding records of class recordClass.
func NewSymbolTable(recordClass string) *SymbolTable {
	return &SymbolTable{RecordClass: recordClass}
}

// ClassName returns "DbSymbolTable".
func (*SymbolTable) ClassName() string { return types.ClassPrefix + "SymbolTable" }

// MemberStyle returns types.ByName.
func (*SymbolTable) MemberStyle() types.MemberStyle { return types.ByName }

// Accepts reports whether obj is a record of the table's class.
func (t *SymbolTable) Accepts(obj types.Object) bool {
	return obj.ClassName() == t.RecordClass
}

// SymbolRecord holds the name shared by every symbol table record.
type SymbolRecord struct {
	types.ObjectBase

	Name string `json:"name"`
}

// EntryName returns the record name.
func (r *SymbolRecord) EntryName() string { return r.Name }

// SetEntryName renames the record.
func (r *SymbolRecord) SetEntryName(name string) { r.Name = name }

// IsDependent reports whether the record came from an external reference
// (its name has the form "block|name").
func (r *SymbolRecord) IsDependent() bool {
	return strings.Contains(r.Name, "|")
}

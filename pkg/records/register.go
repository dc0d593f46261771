package records

import (
	"reflect"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Classes lists a blank instance of every object family in this package.
func Classes() []types.Object {
	return []types.Object{
		&Header{},
		&SymbolTable{},
		&Dictionary{},
		&BlockRecord{},
		&LayerRecord{},
		&LinetypeRecord{},
		&TextStyleRecord{},
		&DimStyleRecord{},
		&RegAppRecord{},
		&UcsRecord{},
		&ViewportRecord{},
		&ViewRecord{},
		&Group{},
		&Layout{},
		&Material{},
		&MLeaderStyle{},
		&Line{},
		&Circle{},
		&Text{},
		&BlockReference{},
	}
}

func init() {
	for _, proto := range Classes() {
		t := reflect.TypeOf(proto).Elem()
		types.RegisterClass(proto.ClassName(), func() types.Object {
			return reflect.New(t).Interface().(types.Object)
		})
	}
}

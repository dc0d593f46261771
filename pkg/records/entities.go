package records

import "github.com/mesh-intelligence/drafts/pkg/types"

// Entity is implemented by every object that can live in a block record.
type Entity interface {
	types.Object
	types.Defaultable
	LayerName() string
}

// EntityBase holds the properties all entities share.
type EntityBase struct {
	types.ObjectBase

	Layer    string `json:"layer"`
	Linetype string `json:"linetype"`
	Color    int    `json:"color"`
}

// LayerName returns the entity's layer.
func (e *EntityBase) LayerName() string { return e.Layer }

// SetDefaults copies the drawing defaults onto the entity.
func (e *EntityBase) SetDefaults(d types.Defaults) {
	e.Layer = d.Layer
	e.Linetype = d.Linetype
	e.Color = d.Color
}

// Line is a straight segment.
type Line struct {
	EntityBase

	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewLine returns a line from start to end.
func NewLine(start, end Point) *Line {
	return &Line{Start: start, End: end}
}

// ClassName returns "DbLine".
func (*Line) ClassName() string { return types.ClassPrefix + "Line" }

// Circle is a full circle.
type Circle struct {
	EntityBase

	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// NewCircle returns a circle.
func NewCircle(center Point, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

// ClassName returns "DbCircle".
func (*Circle) ClassName() string { return types.ClassPrefix + "Circle" }

// Text is a single line of text.
type Text struct {
	EntityBase

	Position Point   `json:"position"`
	Height   float64 `json:"height"`
	Value    string  `json:"value"`
}

// NewText returns a text entity.
func NewText(position Point, height float64, value string) *Text {
	return &Text{Position: position, Height: height, Value: value}
}

// ClassName returns "DbText".
func (*Text) ClassName() string { return types.ClassPrefix + "Text" }

// BlockReference places an instance of a block record.
type BlockReference struct {
	EntityBase

	Block    types.Handle `json:"block"`
	Position Point        `json:"position"`
	Scale    float64      `json:"scale"`
	Rotation float64      `json:"rotation"`
}

// NewBlockReference returns a unit-scale reference to block at position.
func NewBlockReference(block types.Handle, position Point) *BlockReference {
	return &BlockReference{Block: block, Position: position, Scale: 1}
}

// ClassName returns "DbBlockReference".
func (*BlockReference) ClassName() string { return types.ClassPrefix + "BlockReference" }

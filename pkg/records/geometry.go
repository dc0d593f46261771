package records

import "fmt"

// Point is a location in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt builds a Point on the XY plane.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}

// Color values with special meaning.
const (
	ColorByBlock = 0
	ColorByLayer = 256
)

// Linetype names every drawing defines.
const (
	LinetypeByBlock    = "ByBlock"
	LinetypeByLayer    = "ByLayer"
	LinetypeContinuous = "Continuous"
)

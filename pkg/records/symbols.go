package records

import "github.com/mesh-intelligence/drafts/pkg/types"

// LayerRecord is a member of the layer table.
type LayerRecord struct {
	SymbolRecord

	Color    int    `json:"color"`
	Linetype string `json:"linetype"`
	IsOff    bool   `json:"is_off"`
	IsFrozen bool   `json:"is_frozen"`
	IsLocked bool   `json:"is_locked"`
}

// NewLayer returns a layer named name drawn in white with a continuous
// linetype.
func NewLayer(name string) *LayerRecord {
	return &LayerRecord{
		SymbolRecord: SymbolRecord{Name: name},
		Color:        7,
		Linetype:     LinetypeContinuous,
	}
}

// ClassName returns "DbLayerRecord".
func (*LayerRecord) ClassName() string { return types.ClassPrefix + "LayerRecord" }

// LinetypeRecord is a member of the linetype table.
type LinetypeRecord struct {
	SymbolRecord

	Description   string  `json:"description"`
	PatternLength float64 `json:"pattern_length"`
}

// NewLinetype returns a linetype named name.
func NewLinetype(name, description string) *LinetypeRecord {
	return &LinetypeRecord{SymbolRecord: SymbolRecord{Name: name}, Description: description}
}

// ClassName returns "DbLinetypeRecord".
func (*LinetypeRecord) ClassName() string { return types.ClassPrefix + "LinetypeRecord" }

// TextStyleRecord is a member of the text style table.
type TextStyleRecord struct {
	SymbolRecord

	FontFile string  `json:"font_file"`
	TextSize float64 `json:"text_size"`
}

// NewTextStyle returns a text style named name using fontFile.
func NewTextStyle(name, fontFile string) *TextStyleRecord {
	return &TextStyleRecord{SymbolRecord: SymbolRecord{Name: name}, FontFile: fontFile}
}

// ClassName returns "DbTextStyleRecord".
func (*TextStyleRecord) ClassName() string { return types.ClassPrefix + "TextStyleRecord" }

// DimStyleRecord is a member of the dimension style table.
type DimStyleRecord struct {
	SymbolRecord

	TextHeight float64 `json:"text_height"`
	ArrowSize  float64 `json:"arrow_size"`
}

// NewDimStyle returns a dimension style named name.
func NewDimStyle(name string) *DimStyleRecord {
	return &DimStyleRecord{SymbolRecord: SymbolRecord{Name: name}, TextHeight: 0.18, ArrowSize: 0.18}
}

// ClassName returns "DbDimStyleRecord".
func (*DimStyleRecord) ClassName() string { return types.ClassPrefix + "DimStyleRecord" }

// RegAppRecord registers an application name for extended data.
type RegAppRecord struct {
	SymbolRecord
}

// NewRegApp returns a registered application named name.
func NewRegApp(name string) *RegAppRecord {
	return &RegAppRecord{SymbolRecord: SymbolRecord{Name: name}}
}

// ClassName returns "DbRegAppRecord".
func (*RegAppRecord) ClassName() string { return types.ClassPrefix + "RegAppRecord" }

// UcsRecord is a saved user coordinate system.
type UcsRecord struct {
	SymbolRecord

	Origin Point `json:"origin"`
	XAxis  Point `json:"x_axis"`
	YAxis  Point `json:"y_axis"`
}

// NewUcs returns a coordinate system named name aligned with world axes.
func NewUcs(name string, origin Point) *UcsRecord {
	return &UcsRecord{
		SymbolRecord: SymbolRecord{Name: name},
		Origin:       origin,
		XAxis:        Point{X: 1},
		YAxis:        Point{Y: 1},
	}
}

// ClassName returns "DbUcsRecord".
func (*UcsRecord) ClassName() string { return types.ClassPrefix + "UcsRecord" }

// ViewportRecord is a tiled model space viewport configuration.
type ViewportRecord struct {
	SymbolRecord

	Center Point   `json:"center"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

// NewViewport returns a viewport named name.
func NewViewport(name string) *ViewportRecord {
	return &ViewportRecord{SymbolRecord: SymbolRecord{Name: name}, Height: 10, Width: 10}
}

// ClassName returns "DbViewportRecord".
func (*ViewportRecord) ClassName() string { return types.ClassPrefix + "ViewportRecord" }

// ViewRecord is a named view.
type ViewRecord struct {
	SymbolRecord

	Center Point   `json:"center"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

// NewView returns a view named name.
func NewView(name string, center Point, width, height float64) *ViewRecord {
	return &ViewRecord{SymbolRecord: SymbolRecord{Name: name}, Center: center, Width: width, Height: height}
}

// ClassName returns "DbViewRecord".
func (*ViewRecord) ClassName() string { return types.ClassPrefix + "ViewRecord" }

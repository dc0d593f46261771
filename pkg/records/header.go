package records

import "github.com/mesh-intelligence/drafts/pkg/types"

// Header is the root object of a drawing (handle types.Root). It locates
// the symbol tables, the named dictionaries and the layout blocks, and
// holds the drawing-wide defaults.
type Header struct {
	types.ObjectBase

	BlockTable     types.Handle `json:"block_table"`
	LayerTable     types.Handle `json:"layer_table"`
	LinetypeTable  types.Handle `json:"linetype_table"`
	TextStyleTable types.Handle `json:"text_style_table"`
	DimStyleTable  types.Handle `json:"dim_style_table"`
	RegAppTable    types.Handle `json:"reg_app_table"`
	UcsTable       types.Handle `json:"ucs_table"`
	ViewportTable  types.Handle `json:"viewport_table"`
	ViewTable      types.Handle `json:"view_table"`

	NamedObjects           types.Handle `json:"named_objects"`
	GroupDictionary        types.Handle `json:"group_dictionary"`
	LayoutDictionary       types.Handle `json:"layout_dictionary"`
	MaterialDictionary     types.Handle `json:"material_dictionary"`
	MLeaderStyleDictionary types.Handle `json:"mleader_style_dictionary"`

	ModelSpace      types.Handle `json:"model_space"`
	PaperSpace      types.Handle `json:"paper_space"`
	CurrentSpace    types.Handle `json:"current_space"`
	CurrentViewport types.Handle `json:"current_viewport"`

	CurrentLayer    string `json:"current_layer"`
	CurrentLinetype string `json:"current_linetype"`
	CurrentColor    int    `json:"current_color"`

	// Fingerprint identifies the drawing across copies.
	Fingerprint string `json:"fingerprint"`
}

// ClassName returns "DbHeader".
func (*Header) ClassName() string { return types.ClassPrefix + "Header" }

// Defaults returns the values new entities receive when drawing defaults
// are requested.
func (h *Header) Defaults() types.Defaults {
	return types.Defaults{
		Layer:    h.CurrentLayer,
		Linetype: h.CurrentLinetype,
		Color:    h.CurrentColor,
	}
}

package sqlite

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// DefaultRegApp is the application name every drawing registers.
const DefaultRegApp = "DRAFTS"

// seed populates an empty drawing: the header at types.Root, one table per
// symbol family, the named object dictionary with its standard entries, the
// model and paper space blocks and the records every drawing carries.
func (b *Backend) seed() error {
	t, err := b.begin()
	if err != nil {
		return err
	}
	defer t.Abort()

	hdr := &records.Header{
		CurrentLayer:    "0",
		CurrentLinetype: records.LinetypeByLayer,
		CurrentColor:    records.ColorByLayer,
		Fingerprint:     uuid.NewString(),
	}
	if _, err := t.insert(types.Root, types.Null, nil, false, hdr); err != nil {
		return fmt.Errorf("seeding header: %w", err)
	}

	tables := []struct {
		dst   *types.Handle
		class string
	}{
		{&hdr.BlockTable, (&records.BlockRecord{}).ClassName()},
		{&hdr.LayerTable, (&records.LayerRecord{}).ClassName()},
		{&hdr.LinetypeTable, (&records.LinetypeRecord{}).ClassName()},
		{&hdr.TextStyleTable, (&records.TextStyleRecord{}).ClassName()},
		{&hdr.DimStyleTable, (&records.DimStyleRecord{}).ClassName()},
		{&hdr.RegAppTable, (&records.RegAppRecord{}).ClassName()},
		{&hdr.UcsTable, (&records.UcsRecord{}).ClassName()},
		{&hdr.ViewportTable, (&records.ViewportRecord{}).ClassName()},
		{&hdr.ViewTable, (&records.ViewRecord{}).ClassName()},
	}
	for _, tbl := range tables {
		h, err := t.insert(types.Null, types.Root, nil, false, records.NewSymbolTable(tbl.class))
		if err != nil {
			return fmt.Errorf("seeding %s table: %w", tbl.class, err)
		}
		*tbl.dst = h
	}

	if hdr.NamedObjects, err = t.insert(types.Null, types.Root, nil, false, records.NewDictionary()); err != nil {
		return fmt.Errorf("seeding named objects: %w", err)
	}
	dicts := []struct {
		dst *types.Handle
		key string
	}{
		{&hdr.GroupDictionary, records.GroupDictionaryKey},
		{&hdr.LayoutDictionary, records.LayoutDictionaryKey},
		{&hdr.MaterialDictionary, records.MaterialDictionaryKey},
		{&hdr.MLeaderStyleDictionary, records.MLeaderStyleDictionaryKey},
	}
	for _, d := range dicts {
		key := d.key
		h, err := t.insert(types.Null, hdr.NamedObjects, &key, false, records.NewDictionary())
		if err != nil {
			return fmt.Errorf("seeding %s dictionary: %w", d.key, err)
		}
		*d.dst = h
	}

	// Reserved names bypass name validation, so symbols go in through insert.
	symbol := func(table types.Handle, obj types.Named) (types.Handle, error) {
		name := obj.EntryName()
		h, err := t.insert(types.Null, table, &name, true, obj)
		if err != nil {
			return types.Null, fmt.Errorf("seeding %s %q: %w", obj.ClassName(), name, err)
		}
		return h, nil
	}
	entry := func(dict types.Handle, obj types.Named) error {
		key := obj.EntryName()
		if _, err := t.insert(types.Null, dict, &key, false, obj); err != nil {
			return fmt.Errorf("seeding %s %q: %w", obj.ClassName(), key, err)
		}
		return nil
	}

	if hdr.ModelSpace, err = symbol(hdr.BlockTable, records.NewBlock(records.ModelSpaceName)); err != nil {
		return err
	}
	if hdr.PaperSpace, err = symbol(hdr.BlockTable, records.NewBlock(records.PaperSpaceName)); err != nil {
		return err
	}
	hdr.CurrentSpace = hdr.ModelSpace

	if hdr.CurrentViewport, err = symbol(hdr.ViewportTable, records.NewViewport("*Active")); err != nil {
		return err
	}

	standard := []struct {
		table types.Handle
		obj   types.Named
	}{
		{hdr.LayerTable, records.NewLayer("0")},
		{hdr.LinetypeTable, records.NewLinetype(records.LinetypeByBlock, "")},
		{hdr.LinetypeTable, records.NewLinetype(records.LinetypeByLayer, "")},
		{hdr.LinetypeTable, records.NewLinetype(records.LinetypeContinuous, "Solid line")},
		{hdr.TextStyleTable, records.NewTextStyle("Standard", "txt")},
		{hdr.DimStyleTable, records.NewDimStyle("Standard")},
		{hdr.RegAppTable, records.NewRegApp(DefaultRegApp)},
	}
	for _, s := range standard {
		if _, err := symbol(s.table, s.obj); err != nil {
			return err
		}
	}

	entries := []struct {
		dict types.Handle
		obj  types.Named
	}{
		{hdr.LayoutDictionary, records.NewLayout("Model", hdr.ModelSpace, 0)},
		{hdr.LayoutDictionary, records.NewLayout("Layout1", hdr.PaperSpace, 1)},
		{hdr.MaterialDictionary, records.NewMaterial("ByBlock", "")},
		{hdr.MaterialDictionary, records.NewMaterial("ByLayer", "")},
		{hdr.MaterialDictionary, records.NewMaterial("Global", "")},
		{hdr.MLeaderStyleDictionary, records.NewMLeaderStyle("Standard")},
	}
	for _, e := range entries {
		if err := entry(e.dict, e.obj); err != nil {
			return err
		}
	}

	if err := t.Commit(); err != nil {
		return err
	}
	b.log.Info("drawing seeded", "fingerprint", hdr.Fingerprint)
	return nil
}

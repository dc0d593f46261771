package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/drafts/internal/sqlite"
	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// setupScope attaches a fresh drawing in a temp dir and binds a scope to a
// transaction on it.
func setupScope(t *testing.T) (*Scope, *sqlite.Backend) {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	tx, err := b.Begin()
	require.NoError(t, err)
	t.Cleanup(func() { tx.Abort() })
	return Bind(tx), b
}

func newBlock(t *testing.T, scope *Scope, name string) Locator {
	t.Helper()
	blk, err := Blocks.View(scope).Create(name)
	require.NoError(t, err)
	return At(blk.Handle())
}

func TestLayers_TestLayerScenario(t *testing.T) {
	scope, _ := setupScope(t)
	layers := Layers.View(scope)

	before, err := layers.Count()
	require.NoError(t, err)

	_, err = layers.Add(records.NewLayer("TestLayer"))
	require.NoError(t, err)

	ok, err := layers.Contains("TestLayer")
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := layers.Count()
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	got, err := layers.Item("TestLayer")
	require.NoError(t, err)
	assert.Equal(t, "TestLayer", got.Name)
}

func TestContainer_TwoPassesAgree(t *testing.T) {
	scope, _ := setupScope(t)
	for _, name := range []string{"Dashed", "Hidden"} {
		_, err := Linetypes.View(scope).Create(name)
		require.NoError(t, err)
	}
	view := Linetypes.View(scope)

	first, err := Collect(view.All())
	require.NoError(t, err)
	second, err := Collect(view.All())
	require.NoError(t, err)

	require.Len(t, first, 5)
	assert.Equal(t, first, second)
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestContainer_HeterogeneousBlockFiltersByClass(t *testing.T) {
	scope, _ := setupScope(t)
	block := newBlock(t, scope, "Mixed")
	a := records.NewLine(records.Pt(0, 0), records.Pt(1, 0))
	c := records.NewCircle(records.Pt(0, 0), 1)
	b := records.NewLine(records.Pt(0, 1), records.Pt(1, 1))
	_, err := InBlock[records.Entity](scope, block).AddRange([]records.Entity{a, c, b})
	require.NoError(t, err)

	lines, err := Collect(InBlock[*records.Line](scope, block).All())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Same(t, a, lines[0])
	assert.Same(t, b, lines[1])

	all, err := Collect(InBlock[records.Entity](scope, block).All())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestContainer_AddRangeThenCount(t *testing.T) {
	scope, _ := setupScope(t)
	view := InBlock[records.Entity](scope, newBlock(t, scope, "Empty"))

	n, err := view.Count()
	require.NoError(t, err)
	require.Zero(t, n)

	items := []records.Entity{
		records.NewLine(records.Pt(0, 0), records.Pt(1, 0)),
		records.NewCircle(records.Pt(0, 0), 2),
		records.NewText(records.Pt(0, 0), 0.25, "note"),
	}
	hs, err := view.AddRange(items)
	require.NoError(t, err)

	n, err = view.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tx, err := scope.Transaction()
	require.NoError(t, err)
	for i, h := range hs {
		obj, err := tx.GetObject(h, types.ForRead)
		require.NoError(t, err)
		assert.Same(t, items[i], obj)
	}
}

func TestContainer_AddResidentItemFails(t *testing.T) {
	scope, _ := setupScope(t)
	first := InBlock[records.Entity](scope, newBlock(t, scope, "First"))
	second := InBlock[records.Entity](scope, newBlock(t, scope, "Second"))

	line := records.NewLine(records.Pt(0, 0), records.Pt(1, 0))
	_, err := first.Add(line)
	require.NoError(t, err)

	_, err = second.Add(line)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	n, err := first.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = second.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContainer_ContainsAfterAddAndClear(t *testing.T) {
	scope, _ := setupScope(t)
	view := InBlock[records.Entity](scope, newBlock(t, scope, "Scratch"))

	h, err := view.Add(records.NewLine(records.Pt(0, 0), records.Pt(1, 0)))
	require.NoError(t, err)
	ok, err := view.ContainsHandle(h)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, view.Clear())

	ok, err = view.ContainsHandle(h)
	require.NoError(t, err)
	assert.False(t, ok)
	n, err := view.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContainer_ClearFilteredViewKeepsOthers(t *testing.T) {
	scope, _ := setupScope(t)
	block := newBlock(t, scope, "Mixed")
	_, err := InBlock[records.Entity](scope, block).AddRange([]records.Entity{
		records.NewLine(records.Pt(0, 0), records.Pt(1, 0)),
		records.NewCircle(records.Pt(0, 0), 1),
	})
	require.NoError(t, err)

	require.NoError(t, InBlock[*records.Line](scope, block).Clear())

	left, err := Collect(InBlock[records.Entity](scope, block).All())
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.IsType(t, &records.Circle{}, left[0])
}

func TestContainer_ItemNotFound(t *testing.T) {
	scope, _ := setupScope(t)

	_, err := Layers.View(scope).Item("nonexistent-name")
	assert.ErrorIs(t, err, types.ErrNotFound)
	ok, err := Layers.View(scope).Contains("nonexistent-name")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContainer_PassAfterMutationObservesIt(t *testing.T) {
	scope, _ := setupScope(t)
	view := TextStyles.View(scope)

	before, err := Collect(view.All())
	require.NoError(t, err)
	_, err = view.Create("Annotative")
	require.NoError(t, err)
	after, err := Collect(view.All())
	require.NoError(t, err)

	assert.Len(t, after, len(before)+1)
	assert.Equal(t, "Annotative", after[len(after)-1].Name)
}

func TestContainer_StoreErrorsPassThrough(t *testing.T) {
	scope, _ := setupScope(t)
	layers := Layers.View(scope)

	_, err := layers.Add(records.NewLayer("0"))
	assert.ErrorIs(t, err, types.ErrDuplicateName)
	_, err = layers.Add(records.NewLayer("a:b"))
	assert.ErrorIs(t, err, types.ErrInvalidName)
	_, err = Ucss.View(scope).Add(records.NewUcs("", records.Point{}))
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestViewports_Current(t *testing.T) {
	scope, _ := setupScope(t)

	vp, err := Viewports.View(scope).Current()
	require.NoError(t, err)
	assert.Equal(t, "*Active", vp.Name)
}

func TestDictionaries(t *testing.T) {
	scope, _ := setupScope(t)
	groups := Groups.View(scope)

	g := records.NewGroup("doors", "every door", true)
	h, err := groups.AddNamed("DOORS", g)
	require.NoError(t, err)

	got, err := groups.Item("DOORS")
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Equal(t, h, got.Handle())

	layouts, err := Collect(Layouts.View(scope).All())
	require.NoError(t, err)
	require.Len(t, layouts, 2)
	assert.Equal(t, "Model", layouts[0].Name)

	m, err := Materials.View(scope).Create("Brick")
	require.NoError(t, err)
	ok, err := Materials.View(scope).Contains("Brick")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, m.Handle().IsNull())

	n, err := MLeaderStyles.View(scope).Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSymbolTableFamilies(t *testing.T) {
	scope, _ := setupScope(t)
	counts := map[string]func() (int, error){
		"blocks":     Blocks.View(scope).Count,
		"layers":     Layers.View(scope).Count,
		"linetypes":  Linetypes.View(scope).Count,
		"textstyles": TextStyles.View(scope).Count,
		"dimstyles":  DimStyles.View(scope).Count,
		"regapps":    RegApps.View(scope).Count,
		"ucss":       Ucss.View(scope).Count,
		"viewports":  Viewports.View(scope).Count,
		"views":      Views.View(scope).Count,
	}
	want := map[string]int{
		"blocks": 2, "layers": 1, "linetypes": 3, "textstyles": 1, "dimstyles": 1,
		"regapps": 1, "ucss": 0, "viewports": 1, "views": 0,
	}
	for name, count := range counts {
		n, err := count()
		require.NoError(t, err, name)
		assert.Equal(t, want[name], n, name)
	}

	_, err := Views.View(scope).Add(records.NewView("Front", records.Pt(0, 0), 10, 5))
	require.NoError(t, err)
	_, err = DimStyles.View(scope).Create("Metric")
	require.NoError(t, err)
	_, err = RegApps.View(scope).Create("ACAD")
	require.NoError(t, err)
}

func TestModelSpace_DatabaseDefaults(t *testing.T) {
	scope, _ := setupScope(t)
	space := CurrentSpace.View(scope)

	line := records.NewLine(records.Pt(0, 0), records.Pt(3, 4))
	line.Layer = "ignored"
	_, err := space.Add(line, WithDatabaseDefaults())
	require.NoError(t, err)
	assert.Equal(t, "0", line.Layer)
	assert.Equal(t, records.ColorByLayer, line.Color)

	n, err := ModelSpace.View(scope).Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = PaperSpace.View(scope).Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExprPredicate(t *testing.T) {
	scope, _ := setupScope(t)
	layers := Layers.View(scope)
	red := records.NewLayer("red")
	red.Color = 1
	_, err := layers.AddRange([]*records.LayerRecord{red, records.NewLayer("plain")})
	require.NoError(t, err)

	keep, err := Expr[*records.LayerRecord](`color == 1 && !is_off`)
	require.NoError(t, err)
	got, err := Collect(Where(layers.All(), keep))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, red, got[0])

	byName, err := Expr[*records.LayerRecord](`name startsWith "pl" && class == "DbLayerRecord"`)
	require.NoError(t, err)
	got, err = Collect(Where(layers.All(), byName))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "plain", got[0].Name)

	_, err = Expr[*records.LayerRecord](`color ==`)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	_, err = Expr[*records.LayerRecord]("")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestXRefFacade(t *testing.T) {
	scope, backend := setupScope(t)

	x, err := AttachXref(scope, "site.dwg", "site", true)
	require.NoError(t, err)

	name, err := x.BlockName()
	require.NoError(t, err)
	assert.Equal(t, "site", name)
	overlay, err := x.IsFromOverlayReference()
	require.NoError(t, err)
	assert.True(t, overlay)
	attach, err := x.IsFromAttachReference()
	require.NoError(t, err)
	assert.False(t, attach)

	status, err := x.Status()
	require.NoError(t, err)
	assert.Equal(t, types.XrefUnresolved, status)

	require.NoError(t, x.Reload())
	status, err = x.Status()
	require.NoError(t, err)
	assert.Equal(t, types.XrefFileNotFound, status)

	require.NoError(t, os.WriteFile(filepath.Join(backend.DataDir(), "plan.dwg"), nil, 0o644))
	require.NoError(t, x.SetFilePath("plan.dwg"))
	path, err := x.FilePath()
	require.NoError(t, err)
	assert.Equal(t, "plan.dwg", path)
	require.NoError(t, x.Reload())
	status, err = x.Status()
	require.NoError(t, err)
	assert.Equal(t, types.XrefResolved, status)

	require.NoError(t, x.Unload())
	status, err = x.Status()
	require.NoError(t, err)
	assert.Equal(t, types.XrefUnloaded, status)

	require.NoError(t, x.SetBlockName("plan"))
	assert.ErrorIs(t, x.SetBlockName("a|b"), types.ErrInvalidName)
	ok, err := Blocks.View(scope).Contains("plan")
	require.NoError(t, err)
	assert.True(t, ok)

	refs, err := Collect(XRefs(scope))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, x.Handle(), refs[0].Handle())

	require.NoError(t, x.Bind(true))
	_, err = x.Status()
	assert.ErrorIs(t, err, types.ErrNotXref)
	refs, err = Collect(XRefs(scope))
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestXRefDetach(t *testing.T) {
	scope, _ := setupScope(t)
	x, err := AttachXref(scope, "site.dwg", "site", false)
	require.NoError(t, err)
	_, err = Layers.View(scope).Add(records.NewLayer("site|walls"))
	require.NoError(t, err)

	require.NoError(t, x.Detach())

	ok, err := Blocks.View(scope).Contains("site")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = Layers.View(scope).Contains("site|walls")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestXRefErrors(t *testing.T) {
	scope, _ := setupScope(t)
	tx, err := scope.Transaction()
	require.NoError(t, err)
	hdr, err := Header(tx)
	require.NoError(t, err)

	_, err = NewXRef(scope, hdr.ModelSpace).FilePath()
	assert.ErrorIs(t, err, types.ErrNotXref)
	_, err = NewXRef(scope, hdr.LayerTable).BlockName()
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	_, err = AttachXref(scope, "", "empty", false)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	noXref := NewXRef(Bind(&mockTx{}), hdr.ModelSpace)
	assert.ErrorIs(t, noXref.Unload(), types.ErrUnsupported)
}

// Package drafts is the session layer over a drawing store. A Database
// binds one store to one lazily begun transaction and hands out the typed
// container views of package query, all sharing that transaction until
// Commit or Discard ends it.
package drafts

import (
	"iter"
	"log/slog"

	"github.com/mesh-intelligence/drafts/internal/logging"
	"github.com/mesh-intelligence/drafts/pkg/sqlite"
	"github.com/mesh-intelligence/drafts/pkg/query"
	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Version is the release version of the module. Release builds set it
// through -ldflags -X.
var Version = "0.1.0"

// Database is one editing session on a drawing. It is not safe for
// concurrent use.
type Database struct {
	store types.Store
	owned bool
	scope *query.Scope
	log   *slog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Database) { d.log = l }
}

// Open starts a session on an attached store. No transaction is begun
// until the first query needs one.
func Open(store types.Store, opts ...Option) *Database {
	d := &Database{store: store, log: logging.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	d.scope = query.NewScope(d.begin)
	return d
}

// OpenDir attaches a SQLite drawing in dataDir, creating it if needed, and
// starts a session that detaches it on Close.
func OpenDir(dataDir string, opts ...Option) (*Database, error) {
	d := Open(nil, opts...)
	backend, err := sqlite.Open(dataDir, sqlite.WithLogger(d.log))
	if err != nil {
		return nil, err
	}
	d.store = backend
	d.owned = true
	return d, nil
}

func (d *Database) begin() (types.Transaction, error) {
	tx, err := d.store.Begin()
	if err != nil {
		return nil, err
	}
	d.log.Debug("session transaction begun", "tx", tx.ID())
	return tx, nil
}

// Scope returns the scope current views are bound to.
func (d *Database) Scope() *query.Scope { return d.scope }

// Commit commits the session transaction, if one was begun. Views obtained
// before Commit are finished; later calls begin a new transaction.
func (d *Database) Commit() error {
	return d.end(types.Transaction.Commit)
}

// Discard aborts the session transaction, if one was begun.
func (d *Database) Discard() error {
	return d.end(types.Transaction.Abort)
}

func (d *Database) end(finish func(types.Transaction) error) error {
	if !d.scope.Materialized() {
		return nil
	}
	tx, err := d.scope.Transaction()
	d.scope = query.NewScope(d.begin)
	if err != nil {
		return err
	}
	return finish(tx)
}

// Close discards any open transaction and detaches a store the session
// attached itself.
func (d *Database) Close() error {
	if err := d.Discard(); err != nil {
		return err
	}
	if d.owned {
		return d.store.Detach()
	}
	return nil
}

// Header returns the drawing header.
func (d *Database) Header() (*records.Header, error) {
	tx, err := d.scope.Transaction()
	if err != nil {
		return nil, err
	}
	return query.Header(tx)
}

// Blocks returns the block table, model and paper space included.
func (d *Database) Blocks() *query.Container[*records.BlockRecord] {
	return query.Blocks.View(d.scope)
}

// Layers returns the layer table.
func (d *Database) Layers() *query.Container[*records.LayerRecord] {
	return query.Layers.View(d.scope)
}

// Linetypes returns the linetype table.
func (d *Database) Linetypes() *query.Container[*records.LinetypeRecord] {
	return query.Linetypes.View(d.scope)
}

// TextStyles returns the text style table.
func (d *Database) TextStyles() *query.Container[*records.TextStyleRecord] {
	return query.TextStyles.View(d.scope)
}

// DimStyles returns the dimension style table.
func (d *Database) DimStyles() *query.Container[*records.DimStyleRecord] {
	return query.DimStyles.View(d.scope)
}

// RegApps returns the registered application table.
func (d *Database) RegApps() *query.Container[*records.RegAppRecord] {
	return query.RegApps.View(d.scope)
}

// Ucss returns the user coordinate system table.
func (d *Database) Ucss() *query.Container[*records.UcsRecord] {
	return query.Ucss.View(d.scope)
}

// Viewports returns the viewport table.
func (d *Database) Viewports() *query.Container[*records.ViewportRecord] {
	return query.Viewports.View(d.scope)
}

// Views returns the named view table.
func (d *Database) Views() *query.Container[*records.ViewRecord] {
	return query.Views.View(d.scope)
}

// Groups returns the group dictionary.
func (d *Database) Groups() *query.Container[*records.Group] {
	return query.Groups.View(d.scope)
}

// Layouts returns the layout dictionary.
func (d *Database) Layouts() *query.Container[*records.Layout] {
	return query.Layouts.View(d.scope)
}

// Materials returns the material dictionary.
func (d *Database) Materials() *query.Container[*records.Material] {
	return query.Materials.View(d.scope)
}

// MLeaderStyles returns the multileader style dictionary.
func (d *Database) MLeaderStyles() *query.Container[*records.MLeaderStyle] {
	return query.MLeaderStyles.View(d.scope)
}

// ModelSpace returns the entities of model space.
func (d *Database) ModelSpace() *query.Container[records.Entity] {
	return query.ModelSpace.View(d.scope)
}

// PaperSpace returns the entities of the active paper space.
func (d *Database) PaperSpace() *query.Container[records.Entity] {
	return query.PaperSpace.View(d.scope)
}

// CurrentSpace returns the space new entities go to by default.
func (d *Database) CurrentSpace() *query.Container[records.Entity] {
	return query.CurrentSpace.View(d.scope)
}

// XRefs yields the drawing's external references.
func (d *Database) XRefs() iter.Seq2[*query.XRef, error] {
	return query.XRefs(d.scope)
}

// AttachXref references the drawing at path under the block name name.
func (d *Database) AttachXref(path, name string, overlay bool) (*query.XRef, error) {
	return query.AttachXref(d.scope, path, name, overlay)
}

// XRef returns the facade of the reference named name.
func (d *Database) XRef(name string) (*query.XRef, error) {
	b, err := d.Blocks().Item(name)
	if err != nil {
		return nil, err
	}
	x := query.NewXRef(d.scope, b.Handle())
	if _, err := x.Status(); err != nil {
		return nil, err
	}
	return x, nil
}

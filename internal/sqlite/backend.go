// Package sqlite implements the drawing object store on SQLite. Objects are
// persisted as JSON rows keyed by handle; transactions map onto SQLite
// transactions and keep every opened object in memory until they end.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/drafts/internal/logging"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "drawing.db"

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store using SQLite.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *sql.DB
	active   *Transaction

	// classes caches the class of every handle seen. A handle never
	// changes class, but SQLite hands out a rolled-back handle again, so
	// aborted transactions evict the handles they inserted.
	classMu sync.Mutex
	classes map[types.Handle]string

	log     *slog.Logger
	metrics *metrics
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger for lifecycle and transaction events.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// WithRegisterer registers the backend's metrics with reg instead of a
// private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(b *Backend) { b.metrics = newMetrics(reg) }
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		classes: make(map[types.Handle]string),
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.metrics == nil {
		b.metrics = newMetrics(prometheus.NewRegistry())
	}
	return b
}

// Attach opens (or creates) the drawing in config.DataDir. A new drawing is
// seeded with the header, the symbol tables, the named dictionaries and the
// standard records.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	fresh, err := b.open(config)
	if err != nil {
		return err
	}
	if fresh {
		if err := b.seed(); err != nil {
			b.Detach()
			return fmt.Errorf("seeding drawing: %w", err)
		}
	}
	b.log.Debug("store attached", "data_dir", b.DataDir(), "seeded", fresh)
	return nil
}

// open creates the schema and marks the backend attached. It reports
// whether the drawing has no objects yet.
func (b *Backend) open(config types.Config) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return false, types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return false, err
	}

	config = config.WithDefaults()
	dataDir := config.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return false, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFile))
	if err != nil {
		return false, err
	}
	// One connection keeps every statement of a transaction on the same
	// SQLite handle.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return false, fmt.Errorf("creating schema: %w", err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM objects").Scan(&count); err != nil {
		db.Close()
		return false, fmt.Errorf("counting objects: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	b.resetClasses()
	return count == 0, nil
}

// Detach aborts any active transaction and closes the database.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	active := b.active
	b.mu.Unlock()

	if active != nil {
		if err := active.Abort(); err != nil {
			return fmt.Errorf("aborting active transaction: %w", err)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.log.Debug("store detached", "data_dir", b.config.DataDir)
	return nil
}

// Begin starts a transaction.
// Returns ErrStoreDetached if not attached and ErrTransactionActive if
// another transaction has not ended.
func (b *Backend) Begin() (types.Transaction, error) {
	return b.begin()
}

func (b *Backend) begin() (*Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if b.active != nil {
		return nil, types.ErrTransactionActive
	}
	sqlTx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	t := &Transaction{
		id:      newTransactionID(),
		backend: b,
		tx:      sqlTx,
		opened:  make(map[types.Handle]types.Object),
		pending: make(map[types.Handle]types.Object),
		names:   make(map[types.Handle]string),
	}
	b.active = t
	b.log.Debug("transaction begun", "tx", t.id)
	return t, nil
}

// DataDir returns the directory the backend is attached to.
func (b *Backend) DataDir() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.config.DataDir
}

// release clears the active transaction slot.
func (b *Backend) release(t *Transaction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == t {
		b.active = nil
	}
}

func (b *Backend) cachedClass(h types.Handle) (string, bool) {
	b.classMu.Lock()
	defer b.classMu.Unlock()
	c, ok := b.classes[h]
	return c, ok
}

func (b *Backend) cacheClass(h types.Handle, class string) {
	b.classMu.Lock()
	defer b.classMu.Unlock()
	b.classes[h] = class
}

func (b *Backend) forgetClasses(hs []types.Handle) {
	b.classMu.Lock()
	defer b.classMu.Unlock()
	for _, h := range hs {
		delete(b.classes, h)
	}
}

func (b *Backend) resetClasses() {
	b.classMu.Lock()
	defer b.classMu.Unlock()
	b.classes = make(map[types.Handle]string)
}

// newTransactionID generates a UUID v7 for transaction IDs.
func newTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

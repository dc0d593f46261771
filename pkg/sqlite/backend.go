// Package sqlite exposes the SQLite drawing store to other modules while
// its implementation stays internal.
package sqlite

import (
	"github.com/mesh-intelligence/drafts/internal/sqlite"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Backend is the SQLite store. It implements types.Store and adds Export,
// Import and DataDir.
type Backend = sqlite.Backend

// Option configures a Backend.
type Option = sqlite.Option

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = sqlite.DatabaseFile

// Backend options.
var (
	WithLogger     = sqlite.WithLogger
	WithRegisterer = sqlite.WithRegisterer
)

// NewBackend creates a detached backend.
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: ".drafts-db"})
//	defer backend.Detach()
func NewBackend(opts ...Option) *Backend {
	return sqlite.NewBackend(opts...)
}

// Open creates a backend and attaches it to the drawing in dataDir,
// seeding a new drawing when the directory holds none.
func Open(dataDir string, opts ...Option) (*Backend, error) {
	b := sqlite.NewBackend(opts...)
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return nil, err
	}
	return b, nil
}

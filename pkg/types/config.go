package types

import "errors"

// Config selects and parameterizes the backend a Store attaches to.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	// DataDir holds the drawing files. Empty means the working directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// BackendSQLite is the only backend this module ships.
const BackendSQLite = "sqlite"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Validate checks the backend name.
func (c Config) Validate() error {
	switch c.Backend {
	case "":
		return ErrBackendEmpty
	case BackendSQLite:
		return nil
	default:
		return ErrBackendUnknown
	}
}

// WithDefaults returns c with an empty DataDir replaced by ".".
func (c Config) WithDefaults() Config {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	return c
}

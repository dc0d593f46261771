// Package paths resolves where the drafts CLI keeps its configuration and
// its drawing store.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "drafts"

// ConfigFileName is the file read from the configuration directory.
const ConfigFileName = "config.yaml"

// DefaultDataDirName is the store directory used, relative to the working
// directory, when nothing else selects one.
const DefaultDataDirName = ".drafts-db"

// Environment overrides.
const (
	EnvConfigDir = "DRAFTS_CONFIG_DIR"
	EnvDataDir   = "DRAFTS_DATA_DIR"
)

// platform is swapped out in tests.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/drafts or ~/.config/drafts on Linux, and the
// os.UserConfigDir location elsewhere.
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-user data directory:
// $XDG_DATA_HOME/drafts or ~/.local/share/drafts on Linux, and the
// os.UserConfigDir location elsewhere.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func userDir(xdgVar, homeRel string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

// ResolveConfigDir picks the configuration directory: flag, then
// DRAFTS_CONFIG_DIR, then DefaultConfigDir. Explicit values are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if v := firstSet(flag, os.Getenv(EnvConfigDir)); v != "" {
		return filepath.Abs(v)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the store directory: flag, then the data_dir value
// from config.yaml, then DRAFTS_DATA_DIR, then $(CWD)/.drafts-db.
func ResolveDataDir(flag, configured string) (string, error) {
	if v := firstSet(flag, configured, os.Getenv(EnvDataDir)); v != "" {
		return filepath.Abs(v)
	}
	return filepath.Abs(DefaultDataDirName)
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

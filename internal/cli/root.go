// Package cli implements the drafts command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drafts/internal/logging"
	"github.com/mesh-intelligence/drafts/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// systemError marks failures of the environment rather than of the request:
// an unreadable config, a store that cannot be opened, a failed write.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// app holds the global flag values and what PersistentPreRunE derives from
// them. Each root command gets its own.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	// configured is data_dir from config.yaml.
	configured string
	log        *slog.Logger
}

// NewRootCmd creates the top-level "drafts" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: logging.NewNop()}
	root := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect and edit a drawing object store",
		Long: "Drafts reads and edits the symbol tables, dictionaries, block contents and\n" +
			"external references of a drawing kept in a local SQLite store.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: per-user config dir, or $"+paths.EnvConfigDir+")")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "drawing store directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newListCmd(a),
		newCountCmd(a),
		newAddLayerCmd(a),
		newAddLineCmd(a),
		newXrefCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "drafts:", err)
	}
	return exitCode(err)
}

// setup reads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysErr(err)
	}
	a.configured = cfg.GetString(cfgKeyDataDir)

	level := slog.LevelDebug
	if !a.verbose {
		if level, err = logging.ParseLevel(cfg.GetString(cfgKeyLogLevel)); err != nil {
			return fmt.Errorf("%s in %s: %w", cfgKeyLogLevel, paths.ConfigFile(configDir), err)
		}
	}
	a.log = logging.New(cmd.ErrOrStderr(), level, cfg.GetString(cfgKeyLogFormat))
	a.log.Debug("configuration loaded", "config_dir", configDir, "data_dir", a.configured)
	return nil
}

// resolveDataDir applies the flag > config.yaml > env > default chain.
func (a *app) resolveDataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.dataDir, a.configured)
	if err != nil {
		return "", sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	return dir, nil
}

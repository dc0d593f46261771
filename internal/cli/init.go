package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drafts/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and a new drawing store",
		Long: "Write config.yaml to the configuration directory if it is missing, then\n" +
			"create and seed the drawing store. Running init again is harmless.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return err
			}
			written, err := writeConfigIfMissing(a.configDir, dataDir)
			if err != nil {
				return sysErr(err)
			}
			if written {
				a.log.Info("config written", "path", paths.ConfigFile(a.configDir))
			}

			db, err := a.openDatabase()
			if err != nil {
				return err
			}
			hdr, err := db.Header()
			if err != nil {
				db.Close()
				return sysErr(err)
			}
			if err := db.Close(); err != nil {
				return sysErr(err)
			}

			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"data_dir":    dataDir,
					"config_dir":  a.configDir,
					"fingerprint": hdr.Fingerprint,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "drawing %s ready in %s\n", hdr.Fingerprint, dataDir)
			return nil
		},
	}
}

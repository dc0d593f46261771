package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drafts/pkg/drafts"
)

const modulePath = "github.com/mesh-intelligence/drafts"

type versionInfo struct {
	Version string `json:"version"`
	Module  string `json:"module"`
	Go      string `json:"go"`
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the drafts version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: drafts.Version, Module: modulePath, Go: runtime.Version()}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "drafts v%s (%s)\nmodule: %s\n", info.Version, info.Go, info.Module)
			return nil
		},
	}
}

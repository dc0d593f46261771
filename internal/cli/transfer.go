package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Write every object of the drawing to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer b.Detach()

			n, err := b.Export(args[0])
			if err != nil {
				return sysErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d objects to %s\n", n, args[0])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Replace the drawing with the objects in a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer b.Detach()

			n, err := b.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d objects from %s\n", n, args[0])
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drafts/pkg/drafts"
	"github.com/mesh-intelligence/drafts/pkg/query"
)

func newXrefCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xref",
		Short: "Manage external references",
	}
	cmd.AddCommand(
		newXrefListCmd(a),
		newXrefAttachCmd(a),
		newXrefBindCmd(a),
		xrefAction(a, "detach", "Remove a reference and the symbols it brought in", (*query.XRef).Detach),
		xrefAction(a, "reload", "Re-read the referenced drawing", (*query.XRef).Reload),
		xrefAction(a, "unload", "Keep a reference but stop displaying it", (*query.XRef).Unload),
	)
	return cmd
}

// xrefInfo is the printed form of a reference.
type xrefInfo struct {
	Handle  string `json:"handle"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Status  string `json:"status"`
	Overlay bool   `json:"overlay"`
}

func describeXref(x *query.XRef) (xrefInfo, error) {
	info := xrefInfo{Handle: x.Handle().String()}
	var err error
	if info.Name, err = x.BlockName(); err != nil {
		return info, err
	}
	if info.Path, err = x.FilePath(); err != nil {
		return info, err
	}
	status, err := x.Status()
	if err != nil {
		return info, err
	}
	info.Status = status.String()
	info.Overlay, err = x.IsFromOverlayReference()
	return info, err
}

func newXrefListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List external references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			infos := []xrefInfo{}
			for x, err := range db.XRefs() {
				if err != nil {
					return err
				}
				info, err := describeXref(x)
				if err != nil {
					return err
				}
				infos = append(infos, info)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), infos)
			}
			for _, i := range infos {
				kind := "attach"
				if i.Overlay {
					kind = "overlay"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", i.Handle, i.Name, kind, i.Status, i.Path)
			}
			return nil
		},
	}
}

func newXrefAttachCmd(a *app) *cobra.Command {
	var overlay bool
	cmd := &cobra.Command{
		Use:   "attach <path> <name>",
		Short: "Reference another drawing under a block name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(db *drafts.Database) error {
				x, err := db.AttachXref(args[0], args[1], overlay)
				if err != nil {
					return err
				}
				return a.report(cmd, x)
			})
		},
	}
	cmd.Flags().BoolVar(&overlay, "overlay", false, "attach as an overlay")
	return cmd
}

func newXrefBindCmd(a *app) *cobra.Command {
	var insert bool
	cmd := &cobra.Command{
		Use:   "bind <name>",
		Short: "Make a referenced definition part of the drawing",
		Long: "Bind turns the reference into an ordinary block. Symbols it brought in\n" +
			"are renamed block$N$name, or to their plain name with --insert.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(db *drafts.Database) error {
				x, err := db.XRef(args[0])
				if err != nil {
					return err
				}
				if err := x.Bind(insert); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "bound %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&insert, "insert", false, "bind without block name prefixes")
	return cmd
}

// xrefAction builds a subcommand that applies op to the named reference.
func xrefAction(a *app, use, short string, op func(*query.XRef) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(db *drafts.Database) error {
				x, err := db.XRef(args[0])
				if err != nil {
					return err
				}
				if err := op(x); err != nil {
					return err
				}
				if use == "detach" {
					fmt.Fprintf(cmd.OutOrStdout(), "detached %s\n", args[0])
					return nil
				}
				return a.report(cmd, x)
			})
		},
	}
}

func (a *app) report(cmd *cobra.Command, x *query.XRef) error {
	info, err := describeXref(x)
	if err != nil {
		return err
	}
	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), info)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", info.Name, info.Status, info.Path)
	return nil
}

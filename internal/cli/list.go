package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drafts/pkg/drafts"
	"github.com/mesh-intelligence/drafts/pkg/query"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var where string
	var limit int
	cmd := &cobra.Command{
		Use:   "list <container>",
		Short: "List the members of a container",
		Long: "List the members of a symbol table, dictionary or block container.\n" +
			"--where filters with an expression over the member's fields, e.g.\n" +
			"  drafts list layers --where 'color == 1 && !is_off'",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keep func(types.Object) (bool, error)
			if where != "" {
				var err error
				if keep, err = query.Expr[types.Object](where); err != nil {
					return err
				}
			}
			db, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			objs, err := listObjects(db, args[0], keep, limit)
			if err != nil {
				return err
			}
			return a.printObjects(cmd.OutOrStdout(), objs)
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "filter expression")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many members (0 lists all)")
	return cmd
}

func listObjects(db *drafts.Database, name string, keep func(types.Object) (bool, error), limit int) ([]types.Object, error) {
	f, err := lookupFamily(db, name)
	if err != nil {
		return nil, err
	}
	seq := f.all()
	if keep != nil {
		seq = query.Where(seq, keep)
	}
	if limit > 0 {
		seq = query.Take(seq, limit)
	}
	return query.Collect(seq)
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <container>",
		Short: "Count the members of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			f, err := lookupFamily(db, args[0])
			if err != nil {
				return err
			}
			n, err := f.count()
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"container": args[0], "count": n})
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

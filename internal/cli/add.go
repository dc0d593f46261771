package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drafts/pkg/drafts"
	"github.com/mesh-intelligence/drafts/pkg/query"
	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

func newAddLayerCmd(a *app) *cobra.Command {
	var color int
	var linetype string
	var off, frozen bool
	cmd := &cobra.Command{
		Use:   "add-layer <name>",
		Short: "Add a layer to the layer table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layer := records.NewLayer(args[0])
			layer.Color = color
			layer.Linetype = linetype
			layer.IsOff = off
			layer.IsFrozen = frozen

			return a.withSession(func(db *drafts.Database) error {
				ok, err := db.Linetypes().Contains(linetype)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("linetype %q: %w", linetype, types.ErrNotFound)
				}
				if _, err := db.Layers().Add(layer); err != nil {
					return err
				}
				return a.printObjects(cmd.OutOrStdout(), []types.Object{layer})
			})
		},
	}
	cmd.Flags().IntVar(&color, "color", 7, "color index (1-255)")
	cmd.Flags().StringVar(&linetype, "linetype", records.LinetypeContinuous, "linetype name")
	cmd.Flags().BoolVar(&off, "off", false, "create the layer switched off")
	cmd.Flags().BoolVar(&frozen, "frozen", false, "create the layer frozen")
	return cmd
}

func newAddLineCmd(a *app) *cobra.Command {
	var layer, space string
	cmd := &cobra.Command{
		Use:   "add-line <x1> <y1> <x2> <y2>",
		Short: "Add a line to model or paper space",
		Long: "Add a line to a drawing space. The line takes the drawing's current\n" +
			"layer, linetype and color unless --layer names a layer.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c [4]float64
			for i, s := range args {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("coordinate %q: %w", s, types.ErrInvalidArgument)
				}
				c[i] = v
			}
			line := records.NewLine(records.Pt(c[0], c[1]), records.Pt(c[2], c[3]))

			return a.withSession(func(db *drafts.Database) error {
				target, err := spaceOf(db, space)
				if err != nil {
					return err
				}
				var opts []query.AddOption
				if layer == "" {
					opts = append(opts, query.WithDatabaseDefaults())
				} else {
					ok, err := db.Layers().Contains(layer)
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("layer %q: %w", layer, types.ErrNotFound)
					}
					line.Layer = layer
					line.Linetype = records.LinetypeByLayer
					line.Color = records.ColorByLayer
				}
				if _, err := target.Add(line, opts...); err != nil {
					return err
				}
				return a.printObjects(cmd.OutOrStdout(), []types.Object{line})
			})
		},
	}
	cmd.Flags().StringVar(&layer, "layer", "", "layer name (default: the current layer)")
	cmd.Flags().StringVar(&space, "space", "current", "target space: model, paper or current")
	return cmd
}

func spaceOf(db *drafts.Database, name string) (*query.Container[records.Entity], error) {
	switch name {
	case "model":
		return db.ModelSpace(), nil
	case "paper":
		return db.PaperSpace(), nil
	case "current", "":
		return db.CurrentSpace(), nil
	default:
		return nil, fmt.Errorf("space %q: %w", name, types.ErrInvalidArgument)
	}
}

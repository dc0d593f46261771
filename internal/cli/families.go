package cli

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/mesh-intelligence/drafts/pkg/drafts"
	"github.com/mesh-intelligence/drafts/pkg/query"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// family is a container view with its element type erased.
type family struct {
	all   func() iter.Seq2[types.Object, error]
	count func() (int, error)
}

func familyOf[T types.Object](c *query.Container[T]) family {
	return family{
		all: func() iter.Seq2[types.Object, error] {
			return func(yield func(types.Object, error) bool) {
				for v, err := range c.All() {
					if !yield(v, err) {
						return
					}
				}
			}
		},
		count: c.Count,
	}
}

// families maps the container names accepted on the command line.
var families = map[string]func(*drafts.Database) family{
	"blocks":        func(db *drafts.Database) family { return familyOf(db.Blocks()) },
	"layers":        func(db *drafts.Database) family { return familyOf(db.Layers()) },
	"linetypes":     func(db *drafts.Database) family { return familyOf(db.Linetypes()) },
	"textstyles":    func(db *drafts.Database) family { return familyOf(db.TextStyles()) },
	"dimstyles":     func(db *drafts.Database) family { return familyOf(db.DimStyles()) },
	"regapps":       func(db *drafts.Database) family { return familyOf(db.RegApps()) },
	"ucss":          func(db *drafts.Database) family { return familyOf(db.Ucss()) },
	"viewports":     func(db *drafts.Database) family { return familyOf(db.Viewports()) },
	"views":         func(db *drafts.Database) family { return familyOf(db.Views()) },
	"groups":        func(db *drafts.Database) family { return familyOf(db.Groups()) },
	"layouts":       func(db *drafts.Database) family { return familyOf(db.Layouts()) },
	"materials":     func(db *drafts.Database) family { return familyOf(db.Materials()) },
	"mleaderstyles": func(db *drafts.Database) family { return familyOf(db.MLeaderStyles()) },
	"modelspace":    func(db *drafts.Database) family { return familyOf(db.ModelSpace()) },
	"paperspace":    func(db *drafts.Database) family { return familyOf(db.PaperSpace()) },
	"currentspace":  func(db *drafts.Database) family { return familyOf(db.CurrentSpace()) },
}

func familyNames() []string {
	names := make([]string, 0, len(families))
	for n := range families {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func lookupFamily(db *drafts.Database, name string) (family, error) {
	open, ok := families[strings.ToLower(name)]
	if !ok {
		return family{}, fmt.Errorf("unknown container %q (valid: %s): %w",
			name, strings.Join(familyNames(), ", "), types.ErrInvalidArgument)
	}
	return open(db), nil
}

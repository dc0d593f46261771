// Command drafts inspects and edits a drawing object store.
package main

import (
	"os"

	"github.com/mesh-intelligence/drafts/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// Command graphd is a thin CLI wrapper around package engine: it loads a
// Config, builds an Engine and DataSource, and runs a driver.Driver until
// SIGINT/SIGTERM. It is glue, not a production ingest service: file-format
// parsers beyond a plain edge list and a full operator surface are left to
// callers embedding package engine directly.
package main

import "github.com/katalvlaran/graphline/cmd/graphd/cmd"

func main() {
	cmd.Execute()
}

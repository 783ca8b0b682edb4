// mockreg CLI - replay requests against registered mock responses
package main

import (
	"github.com/getmockd/mockreg/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.Execute()
}

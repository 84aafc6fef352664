package main

import (
	"os"

	"github.com/runnerr0/most-active-cookie/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// The parser has already printed the error to stderr.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}

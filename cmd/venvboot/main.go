package main

import (
	"os"

	"github.com/brandonbloom/venvboot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ReportError(os.Stderr, "venvboot", err))
	}
}

package main

import (
	"os"

	"github.com/brandonbloom/venvboot/internal/cli"
)

func main() {
	if err := cli.ExecuteCtl(); err != nil {
		os.Exit(cli.ReportError(os.Stderr, "venvbootctl", err))
	}
}

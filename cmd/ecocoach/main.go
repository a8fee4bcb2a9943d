package main

import (
	"os"

	"github.com/dayimpact/ecocoach/internal/cli"
	"github.com/dayimpact/ecocoach/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

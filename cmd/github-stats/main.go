package main

import (
	"os"

	"ghpro.dev/ghpro/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewStatsRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

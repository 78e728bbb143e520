package main

import (
	"os"

	"ghpro.dev/ghpro/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewBackportRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

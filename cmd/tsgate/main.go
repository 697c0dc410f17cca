// Package main is the entry point for the tsgate CLI binary.
package main

import (
	"os"

	"github.com/tsgate/tsgate/cmd/tsgate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the premium-quote CLI.
package main

import (
	"os"

	"premium-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the shogun CLI tool.
package main

import (
	"os"

	"github.com/menpo/shogun/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the localsearch CLI tool.
package main

import (
	"os"

	"github.com/wizenheimer/localsearch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the smartctx CLI tool.
package main

import (
	"os"

	"github.com/ternary/smartcontext/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

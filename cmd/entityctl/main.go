// Package main is the entry point for entityctl, a small CLI front end that
// exercises pkg/msgentity without adding any behavior of its own: scan,
// parse, sanitize, and look at the result.
package main

import (
	"fmt"
	"os"

	"github.com/jholhewres/msgentity/cmd/entityctl/commands"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	rootCmd := commands.NewRootCmd(version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

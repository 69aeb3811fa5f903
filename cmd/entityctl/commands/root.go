// Package commands implements entityctl's CLI commands using cobra.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command with all subcommands registered.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "entityctl",
		Short: "Inspect msgentity's scanning, parsing and sanitizing pipeline",
		Long: `entityctl is a small front end over pkg/msgentity: it scans text for
entities, runs the markdown/HTML parsers, and sanitizes the result, printing
the spans it finds.

Examples:
  entityctl check --mode find "check out @rustlang #golang"
  entityctl check --mode markdown-v2 "*bold _it_*"
  entityctl repl
  entityctl interactive`,
		Version: version,
	}

	rootCmd.AddCommand(
		newCheckCmd(),
		newReplCmd(),
		newInteractiveCmd(),
	)

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to an extension config file (extra TLDs, short mentions)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	return rootCmd
}

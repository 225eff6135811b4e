package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

var flagFmt string

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("pathtrace version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("pathtrace version %s-dev", version)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pathtrace",
		Short:        "Explore maps with BFS or DFS and replay the search step by step",
		Version:      versionString(),
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "table", "Output format: json|table")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

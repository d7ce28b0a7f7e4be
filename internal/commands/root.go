package commands

import (
	plume "github.com/plumedev/plume"
	"github.com/plumedev/plume/pkg/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the Plume CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "plume",
		Short: "Project analysis and context extraction for Flutter and Dart codebases",
		Long: `Plume analyzes a Flutter or Dart project and produces a machine-readable
context document: file structure, dependencies, architecture patterns,
and code quality.

The document is plain JSON on stdout, so it pipes cleanly into other
tools. Status output goes to stderr.`,
		Version: plume.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}

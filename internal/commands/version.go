package commands

import (
	"fmt"

	plume "github.com/plumedev/plume"
	"github.com/spf13/cobra"
)

// VersionCmd creates the 'version' command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the Plume version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plume version %s\n", plume.Version)
		},
	}
}

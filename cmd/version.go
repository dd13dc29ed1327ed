// cmd package provide a version sub-command for... showing the compiled app
// version :). The version is handed over by main, see main.version.
package cmd

import (
	"fmt"

	cobra "github.com/spf13/cobra"
)

var (
	binVersion = "dev"
)

// NewVersionCommand creates a version sub-command which prints the application version.
func NewVersionCommand() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Prints the application's version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Version: %s\n", binVersion)
			return nil
		},
	}
	return versionCmd
}

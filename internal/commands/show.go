// internal/commands/show.go
package agroserve

import (
	"github.com/spf13/cobra"
)

// showCmd groups the read-only inspection subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show server state and settings",
}

func init() {
	rootCmd.AddCommand(showCmd)
}

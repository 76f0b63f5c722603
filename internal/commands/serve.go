// internal/commands/serve.go
package agroserve

import (
	"os"

	"github.com/agrisage/agroserve/internal/console"
	"github.com/agrisage/agroserve/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd runs the stdio tool server in the foreground. Stdout carries
// protocol frames only; diagnostics go to stderr and the optional log file.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool catalog over stdio",
	Long: `The 'serve' command runs the agricultural tool server on standard
input/output until the transport closes. An orchestration client drives the
session with JSON-RPC 2.0 requests (initialize, tools/list, tools/call).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		console.ForceUTF8()
		return server.New(GetConfig()).Run(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

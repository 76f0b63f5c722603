// servers/mcp/main.go
// Standalone agricultural tool server over stdio (JSON-RPC 2.0 +
// Content-Length framing). The 'agroserve serve' subcommand wraps the same
// session loop; this binary exists for orchestrators that spawn a bare
// server process.
package main

import (
	"flag"
	"os"

	"github.com/agrisage/agroserve/internal/appconfig"
	"github.com/agrisage/agroserve/internal/console"
	"github.com/agrisage/agroserve/internal/logging"
	"github.com/agrisage/agroserve/internal/server"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "path to the config file")
}

func main() {
	flag.Parse()

	cfg, err := appconfig.Load(configPath)
	if err != nil {
		// Every tool has built-in defaults; run without a config file.
		cfg = appconfig.Config{}
	}

	console.ForceUTF8()

	if err := logging.Init(cfg.LogFilePath()); err != nil {
		logging.LogEvent("logging setup failed: %v", err)
	}
	defer logging.Close()

	if err := server.New(&cfg).Run(os.Stdin, os.Stdout); err != nil {
		logging.LogEvent("session ended with error: %v", err)
	}
}

// cmd/agroserve/main.go
package main

import (
	commands "github.com/agrisage/agroserve/internal/commands"
)

// Build-time variables, injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Seams for tests.
var (
	setVersionInfo = commands.SetVersionInfo
	executeCmd     = commands.Execute
)

// main starts the agroserve CLI by delegating to the cobra root command
// defined in the commands package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}

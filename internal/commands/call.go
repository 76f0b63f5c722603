// internal/commands/call.go
package agroserve

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agrisage/agroserve/internal/client"
	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var (
	successfulCall = color.New(color.FgGreen).SprintFunc()
	failedCall     = color.New(color.FgRed).SprintFunc()
)

// callCmd invokes a single tool and prints its text result. Arguments are
// key=value pairs; values that parse as JSON keep their JSON type, everything
// else is passed as a string.
var callCmd = &cobra.Command{
	Use:   "call <tool> [key=value ...]",
	Short: "Invoke a tool and print its result",
	Long: `The 'call' command connects to the tool server, invokes the named tool
once, and prints the text result. Examples:

  agroserve call get_current_weather city=Nagpur
  agroserve call get_placeholder_posts limit=3
  agroserve call get_pesticide_seed_info query="citrus psylla"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs, err := parseCallArgs(args[1:])
		if err != nil {
			return err
		}

		c, err := client.Dial(cmd.Context(), GetConfig())
		if err != nil {
			return err
		}
		defer c.Close()

		content, err := c.CallToolContent(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}
		if DebugEnabled() {
			pp.Println(content)
		}

		var parts []string
		for _, part := range content {
			if part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
		text := strings.Join(parts, "\n")

		// The server reports tool failures as ordinary text, so the status
		// marker is a prefix heuristic, not a protocol signal.
		marker := successfulCall("✓ " + args[0])
		if looksLikeFailure(text) {
			marker = failedCall("✗ " + args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", marker, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}

// parseCallArgs converts key=value pairs into a tool argument map. A value
// that decodes as JSON is passed with its JSON type so numeric arguments
// like limit=3 survive schema validation.
func parseCallArgs(pairs []string) (map[string]any, error) {
	args := map[string]any{}
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid argument %q (expected key=value)", pair)
		}
		var val any
		if err := json.Unmarshal([]byte(raw), &val); err == nil {
			args[key] = val
			continue
		}
		args[key] = raw
	}
	return args, nil
}

// looksLikeFailure reports whether a tool result reads like one of the
// server's failure messages.
func looksLikeFailure(text string) bool {
	for _, prefix := range []string{"Error ", "Unknown tool:", "invalid arguments", "tool panicked:"} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

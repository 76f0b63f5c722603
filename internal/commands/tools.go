// internal/commands/tools.go
package agroserve

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agrisage/agroserve/internal/client"
	"github.com/agrisage/agroserve/mcp/tools"
	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var toolName = color.New(color.FgGreen, color.Bold).SprintFunc()

// toolsCmd lists the catalog the server advertises, in server order.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server advertises",
	Long:  `The 'tools' command connects to the tool server, performs the initialize handshake, and prints every advertised tool with its argument schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.Dial(cmd.Context(), GetConfig())
		if err != nil {
			return err
		}
		defer c.Close()

		defs := c.Tools()
		if DebugEnabled() {
			pp.Println(defs)
		}
		printDefinitions(cmd.OutOrStdout(), defs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

// printDefinitions renders the catalog with one block per tool.
func printDefinitions(out io.Writer, defs []tools.Definition) {
	if len(defs) == 0 {
		fmt.Fprintln(out, "No tools advertised.")
		return
	}
	fmt.Fprintf(out, "Available tools (%d):\n\n", len(defs))
	for _, def := range defs {
		fmt.Fprintf(out, "  %s\n", toolName(def.Name))
		fmt.Fprintf(out, "    %s\n", def.Description)
		for _, line := range schemaLines(def.InputSchema) {
			fmt.Fprintf(out, "    %s\n", line)
		}
		fmt.Fprintln(out)
	}
}

// schemaLines flattens an input schema into one display line per argument.
// Definitions that crossed the wire carry generic JSON types ([]any,
// float64), so both the in-process and decoded shapes are handled.
func schemaLines(schema map[string]any) []string {
	props, ok := schema["properties"].(map[string]any)
	if !ok || len(props) == 0 {
		return []string{"(no arguments)"}
	}

	required := map[string]bool{}
	switch req := schema["required"].(type) {
	case []string:
		for _, name := range req {
			required[name] = true
		}
	case []any:
		for _, name := range req {
			if s, ok := name.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		detail, _ := props[name].(map[string]any)
		typeName, _ := detail["type"].(string)
		if typeName == "" {
			typeName = "any"
		}

		var notes []string
		if required[name] {
			notes = append(notes, "required")
		} else if def, ok := detail["default"]; ok {
			notes = append(notes, fmt.Sprintf("default: %v", def))
		} else {
			notes = append(notes, "optional")
		}
		line := fmt.Sprintf("%s (%s, %s)", name, typeName, strings.Join(notes, ", "))
		lines = append(lines, line)
	}
	return lines
}

// internal/commands/list_commands.go
package agroserve

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// listCmd groups the enumeration subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List CLI resources",
}

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		renderCommandRows(cmd.OutOrStdout(), commandRows(rootCmd, "", ""))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(commandsCmd)
}

// commandRow is one line of the 'list commands' output.
type commandRow struct {
	path  string
	short string
}

// commandRows walks the command tree depth-first. Cobra's generated
// completion subtree is skipped.
func commandRows(cmd *cobra.Command, parentPath, indent string) []commandRow {
	path := cmd.Name()
	if parentPath != "" {
		path = parentPath + " " + cmd.Name()
	}
	if strings.Contains(path, "completion") {
		return nil
	}

	rows := []commandRow{{path: indent + path, short: cmd.Short}}
	for _, sub := range cmd.Commands() {
		rows = append(rows, commandRows(sub, path, indent+"  ")...)
	}
	return rows
}

// renderCommandRows prints the rows with descriptions in an aligned second
// column.
func renderCommandRows(out io.Writer, rows []commandRow) {
	width := 0
	for _, row := range rows {
		if len(row.path) > width {
			width = len(row.path)
		}
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, row := range rows {
		fmt.Fprintf(out, "  %-*s  %s\n", width, row.path, row.short)
	}
}

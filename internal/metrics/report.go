// internal/metrics/report.go
package metrics

import (
	"fmt"
	"io"
	"strings"
)

// Report writes a fixed-width table of per-tool call statistics. Durations
// are reported in milliseconds.
func Report(out io.Writer, snapshot []ToolMetrics) {
	if len(snapshot) == 0 {
		fmt.Fprintln(out, "No tool metrics recorded yet.")
		return
	}

	rows := make([][]string, 0, len(snapshot)+1)
	rows = append(rows, []string{"TOOL", "CALLS", "FAILURES", "MEAN", "MIN", "MAX", "STDDEV", "LAST CALL (UTC)"})
	for _, m := range snapshot {
		rows = append(rows, []string{
			m.ToolName,
			fmt.Sprintf("%d", m.Calls),
			fmt.Sprintf("%d", m.Failures),
			fmt.Sprintf("%.1f", m.DurationMillis.Mean),
			fmt.Sprintf("%.1f", m.DurationMillis.Min),
			fmt.Sprintf("%.1f", m.DurationMillis.Max),
			fmt.Sprintf("%.1f", m.DurationMillis.StdDev()),
			m.LastUpdatedUTC.Format("2006-01-02 15:04:05"),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			line.WriteString(cell)
			if i < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
			}
		}
		fmt.Fprintln(out, line.String())
	}
}

// internal/metrics/aggregator.go
package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/agrisage/agroserve/internal/logging"
	"github.com/agrisage/agroserve/internal/util"
)

// Aggregator collects per-tool call statistics. A zero file path keeps the
// aggregator in-memory only; otherwise Close persists a JSON snapshot and a
// previous snapshot is folded back in at construction.
type Aggregator struct {
	mutex    sync.Mutex
	metrics  map[string]*ToolMetrics
	filePath string
}

// NewAggregator creates an Aggregator, loading any snapshot found at
// filePath.
func NewAggregator(filePath string) *Aggregator {
	agg := &Aggregator{
		metrics:  make(map[string]*ToolMetrics),
		filePath: filePath,
	}
	agg.load()
	return agg
}

// load reads a prior snapshot into memory. A missing or malformed file
// starts the aggregator fresh.
func (a *Aggregator) load() {
	if a.filePath == "" {
		return
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()

	data, err := os.ReadFile(a.filePath)
	if err != nil {
		return
	}

	var metricsSlice []*ToolMetrics
	if err := json.Unmarshal(data, &metricsSlice); err != nil {
		return
	}

	for _, m := range metricsSlice {
		a.metrics[m.ToolName] = m
	}
}

// Record updates the metrics for a tool with one completed call.
func (a *Aggregator) Record(tool string, duration time.Duration, failed bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	toolMetrics, exists := a.metrics[tool]
	if !exists {
		toolMetrics = &ToolMetrics{ToolName: tool}
		a.metrics[tool] = toolMetrics
	}

	toolMetrics.LastUpdatedUTC = time.Now().UTC()
	toolMetrics.Calls++
	if failed {
		toolMetrics.Failures++
	}
	updateRunningStat(&toolMetrics.DurationMillis, float64(duration.Milliseconds()))
}

// updateRunningStat updates a single running statistic using Welford's online
// algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}

// Snapshot returns a copy of the current metrics sorted by tool name.
func (a *Aggregator) Snapshot() []ToolMetrics {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	out := make([]ToolMetrics, 0, len(a.metrics))
	for _, m := range a.metrics {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ToolName < out[j].ToolName })
	return out
}

// Save writes the current metrics to the snapshot file.
func (a *Aggregator) Save() error {
	if a.filePath == "" {
		return nil
	}
	logging.LogEvent("[METRICS] Saving metrics to %s", a.filePath)

	snapshot := a.Snapshot()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	if dir := filepath.Dir(a.filePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(a.filePath, data)
}

// Close persists the final snapshot when a file path was configured.
func (a *Aggregator) Close() error {
	return a.Save()
}

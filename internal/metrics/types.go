// internal/metrics/types.go
package metrics

import (
	"math"
	"time"
)

// ToolMetrics is the top-level document for a single tool's aggregated data.
type ToolMetrics struct {
	ToolName       string      `json:"tool_name"`
	LastUpdatedUTC time.Time   `json:"last_updated_utc"`
	Calls          int64       `json:"calls"`
	Failures       int64       `json:"failures"`
	DurationMillis RunningStat `json:"duration_ms"`
}

// RunningStat holds the necessary values for online calculation of mean,
// variance, and stddev using Welford's algorithm. Every field is serialized
// so a reloaded snapshot keeps accumulating where it left off.
type RunningStat struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"m2"` // Sum of squares of differences from the current mean
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// StdDev returns the sample standard deviation of the observed values.
func (rs RunningStat) StdDev() float64 {
	if rs.Count < 2 {
		return 0
	}
	return math.Sqrt(rs.M2 / float64(rs.Count-1))
}

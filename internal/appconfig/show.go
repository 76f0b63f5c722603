package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	active := fallback
	if cfg != nil {
		active = *cfg
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:            %v\n", active.Debug)
	fmt.Fprintf(out, "  Strict Args:      %v\n", active.StrictArgs)
	fmt.Fprintf(out, "  Metrics:          %v\n", active.Metrics)
	fmt.Fprintf(out, "  Weather Endpoint: %s\n", active.WeatherEndpoint())
	fmt.Fprintf(out, "  Weather Timeout:  %s\n", active.WeatherTimeoutDuration())
	fmt.Fprintf(out, "  Weather TLS Skip: %v\n", active.InsecureWeatherTLS)
	fmt.Fprintf(out, "  Posts Endpoint:   %s\n", active.PostsEndpoint())
	fmt.Fprintf(out, "  Posts Timeout:    %s\n", active.PostsTimeoutDuration())
	fmt.Fprintf(out, "  Init Timeout:     %s\n", active.InitTimeoutDuration())
	fmt.Fprintf(out, "  Server Binary:    %s\n", active.ServerBinaryPath())
	if path := active.LogFilePath(); path != "" {
		fmt.Fprintf(out, "  Log File:         %s\n", path)
	}
	if path := active.MetricsSnapshotPath(); path != "" {
		fmt.Fprintf(out, "  Metrics Path:     %s\n", path)
	}
}

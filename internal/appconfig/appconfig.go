// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// DefaultWeatherBaseURL is the weather provider queried by the weather tool.
	DefaultWeatherBaseURL = "https://wttr.in"
	// DefaultPostsBaseURL is the blog-post provider queried by the posts tool.
	DefaultPostsBaseURL = "https://jsonplaceholder.typicode.com"
	// defaultUserAgent is sent on weather requests; wttr.in rejects unknown agents.
	defaultUserAgent = "Mozilla/5.0"
	// defaultWeatherTimeout bounds a single weather provider round trip.
	defaultWeatherTimeout = 30 * time.Second
	// defaultPostsTimeout bounds a single posts provider round trip.
	defaultPostsTimeout = 10 * time.Second
	// defaultInitTimeout defines the fallback timeout used while initializing a server session.
	defaultInitTimeout = 10 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	Debug              bool   `json:"debug"`
	StrictArgs         bool   `json:"strictArgs"`
	InsecureWeatherTLS bool   `json:"insecureWeatherTLS"`
	Metrics            bool   `json:"metrics"`
	MetricsPath        string `json:"metricsPath,omitempty"`
	LogFile            string `json:"logFile,omitempty"`
	WeatherBaseURL     string `json:"weatherBaseUrl,omitempty"`
	PostsBaseURL       string `json:"postsBaseUrl,omitempty"`
	UserAgent          string `json:"userAgent,omitempty"`
	WeatherTimeout     int    `json:"weatherTimeout,omitempty"`
	PostsTimeout       int    `json:"postsTimeout,omitempty"`
	InitTimeout        int    `json:"initTimeout,omitempty"`
	ServerBinary       string `json:"serverBinary,omitempty"`
	ConfigPath         string `json:"-"`
}

// WeatherTimeoutDuration returns the timeout for weather provider requests, falling back to the default if not specified.
func (c Config) WeatherTimeoutDuration() time.Duration {
	if c.WeatherTimeout <= 0 {
		return defaultWeatherTimeout
	}
	return time.Duration(c.WeatherTimeout) * time.Second
}

// PostsTimeoutDuration returns the timeout for posts provider requests, falling back to the default if not specified.
func (c Config) PostsTimeoutDuration() time.Duration {
	if c.PostsTimeout <= 0 {
		return defaultPostsTimeout
	}
	return time.Duration(c.PostsTimeout) * time.Second
}

// InitTimeoutDuration returns the timeout duration for session initialization.
func (c Config) InitTimeoutDuration() time.Duration {
	if c.InitTimeout <= 0 {
		return defaultInitTimeout
	}
	return time.Duration(c.InitTimeout) * time.Second
}

// WeatherEndpoint returns the weather provider base URL without a trailing slash.
func (c Config) WeatherEndpoint() string {
	if u := strings.TrimSpace(c.WeatherBaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return DefaultWeatherBaseURL
}

// PostsEndpoint returns the posts provider base URL without a trailing slash.
func (c Config) PostsEndpoint() string {
	if u := strings.TrimSpace(c.PostsBaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return DefaultPostsBaseURL
}

// RequestUserAgent returns the User-Agent header sent to the weather provider.
func (c Config) RequestUserAgent() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return defaultUserAgent
}

// LogFilePath returns the path to the application log file. An empty path
// means diagnostics go to stderr only.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// MetricsSnapshotPath returns the file the aggregator persists snapshots to,
// or empty when metrics stay in memory.
func (c Config) MetricsSnapshotPath() string {
	return strings.TrimSpace(c.MetricsPath)
}

// ServerBinaryPath returns the resolved server binary path, choosing a default based on the OS if not provided.
func (c Config) ServerBinaryPath() string {
	if b := strings.TrimSpace(c.ServerBinary); b != "" {
		return b
	}
	goos := runtime.GOOS
	switch goos {
	case "windows":
		return "dist/agroserve-mcp_windows_amd64_v1/agroserve-mcp.exe"
	case "linux":
		return "dist/agroserve-mcp_linux_amd64_v1/agroserve-mcp"
	default:
		return "dist/agroserve-mcp"
	}
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.WeatherTimeout <= 0 {
		config.WeatherTimeout = int(defaultWeatherTimeout.Seconds())
	}
	if config.PostsTimeout <= 0 {
		config.PostsTimeout = int(defaultPostsTimeout.Seconds())
	}

	return config, nil
}

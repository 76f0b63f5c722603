// internal/commands/root.go
package agroserve

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/agrisage/agroserve/internal/appconfig"
	"github.com/agrisage/agroserve/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "agroserve",
	Short: "agroserve — agricultural tool server for AI assistants",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		for _, name := range []string{"debug", "strictArgs", "insecureWeatherTLS", "metrics"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}
		for _, name := range []string{"serverBinary", "logFile", "metricsPath"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("initTimeout") {
			_ = cmd.Flags().Set("initTimeout", strconv.Itoa(viper.GetInt("initTimeout")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.json", "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("strictArgs", false, "reject tool arguments that fail schema validation")
	rootCmd.PersistentFlags().Bool("insecureWeatherTLS", false, "skip TLS verification for the weather provider")
	rootCmd.PersistentFlags().Bool("metrics", false, "record per-tool call metrics")
	rootCmd.PersistentFlags().String("metricsPath", "", "path to the metrics snapshot file")
	rootCmd.PersistentFlags().String("serverBinary", "", "path to the tool server binary (defaults per OS)")
	rootCmd.PersistentFlags().Int("initTimeout", 0, "seconds to wait for server startup (0 = default)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("strictArgs", rootCmd.PersistentFlags().Lookup("strictArgs"))
	_ = viper.BindPFlag("insecureWeatherTLS", rootCmd.PersistentFlags().Lookup("insecureWeatherTLS"))
	_ = viper.BindPFlag("metrics", rootCmd.PersistentFlags().Lookup("metrics"))
	_ = viper.BindPFlag("metricsPath", rootCmd.PersistentFlags().Lookup("metricsPath"))
	_ = viper.BindPFlag("serverBinary", rootCmd.PersistentFlags().Lookup("serverBinary"))
	_ = viper.BindPFlag("initTimeout", rootCmd.PersistentFlags().Lookup("initTimeout"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing file is fine; flags
// and defaults cover everything the server needs.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// StrictArgsEnabled returns true if schema validation of tool arguments is enabled.
func StrictArgsEnabled() bool { return viper.GetBool("strictArgs") }

// MetricsEnabled returns true if per-tool metrics collection is enabled.
func MetricsEnabled() bool { return viper.GetBool("metrics") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// Package cmd provides CLI commands for the inventory API.
package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inventory-api/internal/config"
)

// Version information, injected at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Global flags
var (
	cfgFile       string // Config file path
	logLevel      string // Log level
	inventoryFile string // Inventory file path override
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "inventory-api",
	Short: "Read-only HTTP API over an Ansible YAML inventory",
	Long: `inventory-api loads an Ansible YAML inventory once at startup and serves its
groups and hosts to dashboard datasources (e.g. a Grafana JSON/Infinity datasource).

Endpoints:
  GET /                 status, number of known groups
  GET /search           group names
  GET /query/{group}    hosts of a group, optionally enriched as host:9100
  GET /query            hosts of every group (when enabled)

The inventory path comes from --inventory, INVENTORY_API_INVENTORY_FILE,
DASHBOARD_INVENTORY_FILE or defaults to ./hosts.yaml.`,
	Version: Version,
	// Run displays help when called without any subcommands
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// init initializes the root command and its flags.
func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&inventoryFile, "inventory", "i", "", "inventory file path (overrides config and environment)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig loads the configuration, applies command line overrides and builds the logger.
// It exits the process when the configuration is invalid.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger) {
	cfg, err := config.Load(cfgFile)
	if err == nil {
		if inventoryFile != "" {
			cfg.Inventory.File = inventoryFile
		}
		// Command line --log-level overrides config file setting
		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		err = config.Validate(cfg)
	}
	if err != nil {
		// Use temporary console logger for config loading errors
		tmpLogger := setupLogger("error", "console", os.Stderr)
		tmpLogger.Error().Err(err).Str("path", cfgFile).Msg("failed to load config")
		fmt.Fprintf(os.Stderr, "❌ failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	logger.Debug().
		Str("config_path", cfgFile).
		Str("log_level", cfg.Logging.Level).
		Str("log_format", cfg.Logging.Format).
		Msg("configuration loaded successfully")

	return cfg, logger
}

// setupLogger creates a zerolog logger writing JSON or console output to out.
func setupLogger(level string, format string, out io.Writer) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var output io.Writer
	if format == "json" {
		// JSON format - structured logging for log aggregation systems
		output = out
	} else {
		// Console format - human-readable output for development
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(output).Level(logLevel).With().Timestamp().Logger()
}

// GetVersionInfo returns formatted version information.
func GetVersionInfo() string {
	return Version + "\n" +
		"Build Time: " + BuildTime + "\n" +
		"Git Commit: " + GitCommit + "\n" +
		"Go Version: " + runtime.Version() + "\n" +
		"OS/Arch: " + runtime.GOOS + "/" + runtime.GOARCH
}

// Package config provides configuration management for the inventory API.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LegacyInventoryEnv is the environment variable the dashboard deployment uses for the inventory path.
const LegacyInventoryEnv = "DASHBOARD_INVENTORY_FILE"

// Load reads configuration from defaults, the optional YAML file at configPath and
// environment variables. Environment variables take precedence over file values.
// Environment variable format: INVENTORY_API_<SECTION>_<KEY> (e.g., INVENTORY_API_SERVER_LISTEN).
// An empty configPath skips the file entirely.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	// Configure environment variable binding
	v.SetEnvPrefix("INVENTORY_API")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("inventory.file", "INVENTORY_API_INVENTORY_FILE", LegacyInventoryEnv); err != nil {
		return nil, fmt.Errorf("failed to bind inventory file env: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Inventory defaults
	v.SetDefault("inventory.file", "hosts.yaml")

	// Server defaults
	v.SetDefault("server.listen", ":8000")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.cors_allowed_origin", "*")

	// Feature defaults: enriched flavor with the bare /query route
	v.SetDefault("features.enrichment", true)
	v.SetDefault("features.all_hosts_route", true)

	// Report defaults
	v.SetDefault("report.output_dir", "./reports")
	v.SetDefault("report.formats", []string{"excel", "html"})
	v.SetDefault("report.filename_template", "inventory_{{.Date}}")
	v.SetDefault("report.timezone", "UTC")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Client defaults
	v.SetDefault("client.endpoint", "http://localhost:8000")
	v.SetDefault("client.timeout", 10*time.Second)
	v.SetDefault("client.retry.max_retries", 3)
	v.SetDefault("client.retry.base_delay", 500*time.Millisecond)
}

// Package config provides configuration management for the inventory API.
package config

import "time"

// Config is the root configuration structure for the inventory API.
type Config struct {
	Inventory InventoryConfig `mapstructure:"inventory"`
	Server    ServerConfig    `mapstructure:"server"`
	Features  FeaturesConfig  `mapstructure:"features"`
	Report    ReportConfig    `mapstructure:"report"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Client    ClientConfig    `mapstructure:"client"`
}

// InventoryConfig locates the Ansible inventory file.
type InventoryConfig struct {
	File string `mapstructure:"file" validate:"required"` // Also read from DASHBOARD_INVENTORY_FILE
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Listen            string        `mapstructure:"listen" validate:"required,hostname_port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowedOrigin string        `mapstructure:"cors_allowed_origin"`
}

// FeaturesConfig selects the service flavor.
// Both flags off reproduces the plain dashboard service: no enrichment and no bare /query route.
type FeaturesConfig struct {
	Enrichment    bool `mapstructure:"enrichment"`      // Honor the enrich query flag
	AllHostsRoute bool `mapstructure:"all_hosts_route"` // Serve GET /query
}

// ReportConfig contains configurations for inventory exports.
type ReportConfig struct {
	OutputDir        string   `mapstructure:"output_dir"`
	Formats          []string `mapstructure:"formats" validate:"dive,oneof=excel html"`
	FilenameTemplate string   `mapstructure:"filename_template"`
	Timezone         string   `mapstructure:"timezone" validate:"timezone"`
}

// LoggingConfig contains configurations for logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// ClientConfig configures the client used to query a running inventory API.
type ClientConfig struct {
	Endpoint string        `mapstructure:"endpoint" validate:"required,url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retry    RetryConfig   `mapstructure:"retry"`
}

// RetryConfig defines retry behavior for HTTP requests.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
}

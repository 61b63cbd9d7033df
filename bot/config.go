// Package bot assembles the Buynoculars application: configuration,
// service wiring, dialog registration, and the Telegram transport glue.
package bot

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/glennakiN/Buynoculars-sub000/core/config"
	coredatabase "github.com/glennakiN/Buynoculars-sub000/core/database"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// SearchConfig tunes the coin search dialogs.
type SearchConfig struct {
	// AutoSelectThreshold skips manual selection when the top hit scores
	// at least this much. 0 keeps the built-in default.
	AutoSelectThreshold float64 `yaml:"autoselect_threshold" envconfig:"SEARCH_AUTOSELECT_THRESHOLD"`
	// PageSize bounds manual selection pages. 0 keeps the default.
	PageSize int `yaml:"page_size" envconfig:"SEARCH_PAGE_SIZE"`
}

// AlertsConfig bounds per-owner alert configuration.
type AlertsConfig struct {
	MaxAlerts     int `yaml:"max_alerts" envconfig:"ALERTS_MAX"`
	MaxIndicators int `yaml:"max_indicators" envconfig:"ALERTS_MAX_INDICATORS"`
}

// StorageConfig selects where watchlists and alerts live.
type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
}

// Config aggregates core and application configuration.
type Config struct {
	Core coreconfig.Config `yaml:",inline"`

	Search   SearchConfig        `yaml:"search"`
	Alerts   AlertsConfig        `yaml:"alerts"`
	Storage  StorageConfig       `yaml:"storage"`
	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration for the runner.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Core }

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return err
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if driver == "" {
		driver = StorageMemory
	}
	switch driver {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(cfg.Database.Host) == "" {
			return fmt.Errorf("database.host is required when storage.driver is 'postgres'")
		}
		if strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("database.name is required when storage.driver is 'postgres'")
		}
	default:
		return fmt.Errorf("invalid storage.driver %q; allowed: memory, postgres", cfg.Storage.Driver)
	}
	cfg.Storage.Driver = driver

	if cfg.Search.AutoSelectThreshold < 0 {
		return fmt.Errorf("search.autoselect_threshold must be >= 0")
	}
	if cfg.Search.PageSize < 0 {
		return fmt.Errorf("search.page_size must be >= 0")
	}
	if cfg.Alerts.MaxAlerts < 0 || cfg.Alerts.MaxIndicators < 0 {
		return fmt.Errorf("alerts limits must be >= 0")
	}
	return nil
}

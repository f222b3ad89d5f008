// Package config loads the CLI's runtime configuration: data-directory
// resolution, dataset/index filenames, and the optional Postgres
// starmap source, following the teacher's viper+validator+godotenv
// layering.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level configuration struct.
type Config struct {
	DataDir         string        `mapstructure:"data_dir" validate:"required"`
	DatasetFile     string        `mapstructure:"dataset_file" validate:"required"`
	ShipCatalogFile string        `mapstructure:"ship_catalog_file"`
	IndexSuffix     string        `mapstructure:"index_suffix" validate:"required"`
	StrictFreshness bool          `mapstructure:"strict_freshness"`
	WatchInterval   time.Duration `mapstructure:"watch_interval"`
	Postgres        PostgresConfig `mapstructure:"postgres"`
	Logging         LoggingConfig  `mapstructure:"logging"`
}

// PostgresConfig names the optional gorm-backed starmap source (spec §6:
// "source is ... a file path, a byte buffer, or a connection").
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LoggingConfig carries a log level setting (default "info"). No code in
// this module reads it; commands write their output with fmt, and the
// standard-library log package is not called anywhere.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from, in ascending priority: defaults, an
// optional config file, then environment variables (EVEFRONTIER_ prefix),
// following the teacher's LoadConfig precedence. explicitDataDir, when
// non-empty, wins over everything (spec §6's resolution order).
func Load(explicitDataDir, configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/evefrontier")
	}

	v.SetEnvPrefix("EVEFRONTIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	dataDir, err := ResolveDataDir(explicitDataDir, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	cfg.DataDir = dataDir

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ResolveDataDir implements spec §6's order: explicit argument, then
// EVEFRONTIER_DATA_DIR, then configuredFallback (from a config file or
// AutomaticEnv binding already captured in cfg.DataDir), then the
// platform cache directory, then the process working directory.
func ResolveDataDir(explicit, configured string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("EVEFRONTIER_DATA_DIR"); env != "" {
		return env, nil
	}
	if configured != "" {
		return configured, nil
	}
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "evefrontier"), nil
	}
	return os.Getwd()
}

// DatasetPath is the resolved path to the SQLite starmap dataset.
func (c *Config) DatasetPath() string {
	return filepath.Join(c.DataDir, c.DatasetFile)
}

// IndexPath is the resolved path to the dataset's spatial index,
// following spec §6's ".spatial.bin suffix beside the dataset file".
func (c *Config) IndexPath() string {
	return c.DatasetPath() + c.IndexSuffix
}

// ShipCatalogPath is the resolved path to the ship-catalog CSV.
func (c *Config) ShipCatalogPath() string {
	if c.ShipCatalogFile == "" {
		return ""
	}
	return filepath.Join(c.DataDir, c.ShipCatalogFile)
}

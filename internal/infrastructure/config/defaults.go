package config

import "time"

// SetDefaults fills unset fields with the documented defaults.
func SetDefaults(cfg *Config) {
	if cfg.DatasetFile == "" {
		cfg.DatasetFile = "starmap.db"
	}
	if cfg.ShipCatalogFile == "" {
		cfg.ShipCatalogFile = "ships.csv"
	}
	if cfg.IndexSuffix == "" {
		cfg.IndexSuffix = ".spatial.bin"
	}
	if cfg.WatchInterval == 0 {
		cfg.WatchInterval = 15 * time.Minute
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

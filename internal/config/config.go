package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the dugout tools.
type Config struct {
	Storage   Storage   `yaml:"storage"`
	Provider  Provider  `yaml:"provider"`
	Retention Retention `yaml:"retention"`
	Logging   Logging   `yaml:"logging"`
	Report    Report    `yaml:"report"`
}

// Storage holds paths for data persistence and generated output.
type Storage struct {
	SQLitePath string `yaml:"sqlite_path"`
	ArchiveDir string `yaml:"archive_dir"`
	OutputDir  string `yaml:"output_dir"`
}

// Provider holds endpoints and fetch parameters for the external stats
// provider.
type Provider struct {
	BaseURL         string `yaml:"base_url"`
	StatcastURL     string `yaml:"statcast_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
	MaxAttempts     int    `yaml:"max_attempts"`
}

// Retention controls the rolling-window retention policy.
type Retention struct {
	Days int `yaml:"days"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Report configures the daily leaderboard report.
type Report struct {
	TopN      int     `yaml:"top_n"`
	QualifyIP float64 `yaml:"qualify_ip"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, applies environment variable overrides, and fills in
// defaults for values left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DUGOUT_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("DUGOUT_ARCHIVE_DIR"); v != "" {
		cfg.Storage.ArchiveDir = v
	}
	if v := os.Getenv("DUGOUT_OUTPUT_DIR"); v != "" {
		cfg.Storage.OutputDir = v
	}
	if v := os.Getenv("DUGOUT_PROVIDER_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("DUGOUT_STATCAST_URL"); v != "" {
		cfg.Provider.StatcastURL = v
	}
	if v := os.Getenv("DUGOUT_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retention.Days = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// applyDefaults fills fields the file and environment left at zero values.
func applyDefaults(cfg *Config) {
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "mlb_data.db"
	}
	if cfg.Storage.OutputDir == "" {
		cfg.Storage.OutputDir = "."
	}
	if cfg.Provider.TimeoutSeconds <= 0 {
		cfg.Provider.TimeoutSeconds = 60
	}
	if cfg.Provider.RateLimitPerMin <= 0 {
		cfg.Provider.RateLimitPerMin = 20
	}
	if cfg.Provider.MaxAttempts <= 0 {
		cfg.Provider.MaxAttempts = 1
	}
	if cfg.Retention.Days <= 0 {
		cfg.Retention.Days = 45
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Report.TopN <= 0 {
		cfg.Report.TopN = 5
	}
	if cfg.Report.QualifyIP <= 0 {
		cfg.Report.QualifyIP = 10
	}
}

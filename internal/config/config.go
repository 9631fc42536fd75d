// Package config handles tool configuration loading and management.
package config

// Config holds all importer settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Cache   CacheConfig   `yaml:"cache"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds mesh conversion settings.
type ImportConfig struct {
	Scale       float32 `yaml:"scale"`        // World scale applied to positions
	FlipWinding bool    `yaml:"flip_winding"` // Reverse triangle winding order
	FailFast    bool    `yaml:"fail_fast"`    // Abort batch imports on the first error
	Workers     int     `yaml:"workers"`      // Concurrent files during batch imports
}

// CacheConfig holds decoded-model cache settings.
type CacheConfig struct {
	Entries int `yaml:"entries"` // Max cached models, 0 disables caching
}

// ServerConfig holds inspection server settings.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Scale:       0.01,
			FlipWinding: false,
			FailFast:    false,
			Workers:     0,
		},
		Cache: CacheConfig{
			Entries: 64,
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8035",
			MaxUploadMB: 256,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

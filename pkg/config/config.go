// Package config handles loading and managing nrrscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for nrrscope.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Cache    CacheConfig    `yaml:"cache"`
	Scenario ScenarioConfig `yaml:"scenario"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port          string `yaml:"port"`
	APIKey        string `yaml:"api_key"` // guards table writes; empty disables auth
	AllowedOrigin string `yaml:"allowed_origin"`
}

// StorageConfig selects where the points table is persisted.
type StorageConfig struct {
	Backend     string `yaml:"backend"` // local, s3, gcs or none
	LocalPath   string `yaml:"local_path"`
	Bucket      string `yaml:"bucket"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"` // S3-compatible endpoint override
	DatabaseURL string `yaml:"database_url"`
	SeedFile    string `yaml:"seed_file"` // JSON table used when nothing is persisted
}

// CacheConfig controls the scenario result cache.
type CacheConfig struct {
	Size     int    `yaml:"size"`
	RedisURL string `yaml:"redis_url"`
	TTL      int    `yaml:"ttl"` // seconds
}

// ScenarioConfig bounds scenario requests.
type ScenarioConfig struct {
	MaxPosition  int `yaml:"max_position"`
	DefaultOvers int `yaml:"default_overs"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "5000",
			AllowedOrigin: "*",
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: filepath.Join(DataDir(), "tables"),
		},
		Cache: CacheConfig{
			Size: 256,
			TTL:  600,
		},
		Scenario: ScenarioConfig{
			MaxPosition:  10,
			DefaultOvers: 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "local", "none", "":
	case "s3", "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage backend %q requires a bucket", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Scenario.MaxPosition < 0 {
		return fmt.Errorf("scenario.max_position must not be negative")
	}
	if c.Cache.Size < 0 || c.Cache.TTL < 0 {
		return fmt.Errorf("cache size and ttl must not be negative")
	}
	return nil
}

// FindConfigFile looks for .nrrscope/config.yaml in the given directory and
// its parents, then in the user's home directory. It returns "" if none exists.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".nrrscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(home, ".nrrscope", "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// DataDir returns the directory nrrscope keeps local state in.
// Uses ~/.cache/nrrscope, falling back to the temp dir without a home.
func DataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "nrrscope")
}

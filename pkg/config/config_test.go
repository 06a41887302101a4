package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "5000" {
		t.Errorf("expected default port 5000, got %q", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("expected default backend 'local', got %q", cfg.Storage.Backend)
	}
	if cfg.Scenario.MaxPosition != 10 {
		t.Errorf("expected default max position 10, got %d", cfg.Scenario.MaxPosition)
	}
	if cfg.Cache.Size != 256 {
		t.Errorf("expected default cache size 256, got %d", cfg.Cache.Size)
	}
	if !strings.HasSuffix(cfg.Storage.LocalPath, filepath.Join("nrrscope", "tables")) {
		t.Errorf("unexpected default local path %q", cfg.Storage.LocalPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		missing bool
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "non-existent file returns defaults",
			missing: true,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != "5000" {
					t.Errorf("expected default port, got %q", cfg.Server.Port)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
server:
  port: "8080"
  api_key: secret
storage:
  backend: s3
  bucket: tables
  region: eu-west-1
cache:
  redis_url: redis://localhost:6379/0
  ttl: 60
scenario:
  max_position: 8
logging:
  level: debug
  json: true
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != "8080" || cfg.Server.APIKey != "secret" {
					t.Errorf("server section not applied: %+v", cfg.Server)
				}
				if cfg.Storage.Backend != "s3" || cfg.Storage.Bucket != "tables" {
					t.Errorf("storage section not applied: %+v", cfg.Storage)
				}
				if cfg.Cache.TTL != 60 || cfg.Cache.Size != 256 {
					t.Errorf("cache section not merged with defaults: %+v", cfg.Cache)
				}
				if cfg.Scenario.MaxPosition != 8 || cfg.Scenario.DefaultOvers != 20 {
					t.Errorf("scenario section not merged with defaults: %+v", cfg.Scenario)
				}
				if !cfg.Logging.JSON || cfg.Logging.Level != "debug" {
					t.Errorf("logging section not applied: %+v", cfg.Logging)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
		{
			name:    "bucket backend without bucket",
			yaml:    "storage:\n  backend: gcs\n",
			wantErr: true,
		},
		{
			name:    "unknown backend",
			yaml:    "storage:\n  backend: ftp\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")

			if !tc.missing {
				if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
					t.Fatalf("write test config: %v", err)
				}
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", t.TempDir())

	writeConfig := func(t *testing.T, dir string) string {
		t.Helper()
		configDir := filepath.Join(dir, ".nrrscope")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		return configPath
	}

	t.Run("found in current directory", func(t *testing.T) {
		root := t.TempDir()
		configPath := writeConfig(t, root)

		if got := FindConfigFile(root); got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configPath := writeConfig(t, root)

		sub := filepath.Join(root, "a", "b", "c")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		if got := FindConfigFile(sub); got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if got := FindConfigFile(t.TempDir()); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})

	t.Run("falls back to home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		configPath := writeConfig(t, home)

		if got := FindConfigFile(t.TempDir()); got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})
}

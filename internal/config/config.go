// ABOUTME: Recovery configuration management with backend selection.
// ABOUTME: Loads the JSON config file, applies RECOVERY_* environment overrides, and opens storage.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/harperreed/recovery/internal/charm"
	"github.com/harperreed/recovery/internal/storage"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendFile   = "file"
	BackendCharm  = "charm"
)

// Backends lists every supported backend name.
var Backends = []string{BackendSQLite, BackendBadger, BackendFile, BackendCharm}

// Config stores recovery tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", "file" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local backends.
	// SQLite puts recovery.db here, Badger uses badger/, the file backend uses collections/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/recovery.
	DataDir string `json:"data_dir,omitempty"`

	// SampleData seeds collections with built-in sample records when nothing is stored.
	SampleData bool `json:"sample_data,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty"`
}

// envOverrides are applied on top of the config file. Unset variables leave fields untouched.
type envOverrides struct {
	Backend    *string `env:"RECOVERY_BACKEND"`
	DataDir    *string `env:"RECOVERY_DATA_DIR"`
	SampleData *bool   `env:"RECOVERY_SAMPLE_DATA"`
	LogLevel   *string `env:"RECOVERY_LOG_LEVEL"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// StoragePath returns where a local backend keeps its data.
func (c *Config) StoragePath(backend string) string {
	dataDir := c.GetDataDir()
	switch backend {
	case BackendSQLite:
		return filepath.Join(dataDir, "recovery.db")
	case BackendBadger:
		return filepath.Join(dataDir, "badger")
	case BackendFile:
		return filepath.Join(dataDir, "collections")
	default:
		return ""
	}
}

// OpenStorage creates a BlobStore for the configured backend.
func (c *Config) OpenStorage() (storage.BlobStore, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend creates a BlobStore for the named backend using this config's data directory.
func (c *Config) OpenBackend(backend string) (storage.BlobStore, error) {
	var (
		store storage.BlobStore
		err   error
	)
	switch backend {
	case BackendSQLite:
		store, err = storage.Open(c.StoragePath(backend))
	case BackendBadger:
		store, err = storage.OpenBadger(c.StoragePath(backend))
	case BackendFile:
		store, err = storage.NewFileStore(c.StoragePath(backend))
	case BackendCharm:
		store, err = charm.Open()
	default:
		return nil, fmt.Errorf("unknown backend: %q (valid: %s)", backend, strings.Join(Backends, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", backend, err)
	}
	return store, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "recovery", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from RECOVERY_* environment variables.
func (c *Config) ApplyEnv() error {
	o, err := env.ParseAs[envOverrides]()
	if err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if o.Backend != nil {
		c.Backend = *o.Backend
	}
	if o.DataDir != nil {
		c.DataDir = *o.DataDir
	}
	if o.SampleData != nil {
		c.SampleData = *o.SampleData
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

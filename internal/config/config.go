// ABOUTME: Reel configuration management with backend selection
// ABOUTME: Handles settings, environment overrides, and storage backend factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/reel/internal/charm"
	"github.com/harper/reel/internal/storage"
	"github.com/kelseyhightower/envconfig"
)

// Config stores reel configuration.
type Config struct {
	// Backend selects the storage backend: "bolt" (default), "badger",
	// "sqlite", "charm" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/reel.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn or error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// LogFormat is "console" (default) or "json".
	LogFormat string `json:"log_format,omitempty"`
}

// envOverrides is read from REEL_* environment variables.
// Set values take precedence over the config file.
type envOverrides struct {
	Backend   string `envconfig:"BACKEND"`
	DataDir   string `envconfig:"DATA_DIR"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogFormat string `envconfig:"LOG_FORMAT"`
}

// envPrefix is the prefix of every environment override.
const envPrefix = "reel"

// File names inside the data directory.
const (
	boltFilename   = "reel.db"
	sqliteFilename = "reel.sqlite"
	badgerDirname  = "badger"
)

// GetBackend returns the configured backend, defaulting to bolt.
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return storage.BackendBolt
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// GetLogFormat returns the configured log format, defaulting to console.
func (c *Config) GetLogFormat() string {
	if c.LogFormat == "" {
		return "console"
	}
	return c.LogFormat
}

// defaultDataDir returns the default XDG data directory for reel.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "reel")
}

// defaultFirstRunConfig returns the appropriate default config for first-time runs.
// An existing SQLite database keeps SQLite as the backend; everyone else gets bolt.
func defaultFirstRunConfig() *Config {
	dbPath := filepath.Join(defaultDataDir(), sqliteFilename)
	_, err := os.Stat(dbPath)
	switch {
	case err == nil:
		return &Config{Backend: storage.BackendSQLite}
	case !os.IsNotExist(err):
		fmt.Fprintf(os.Stderr, "warning: could not check for existing database: %v\n", err)
	}
	return &Config{Backend: storage.BackendBolt}
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

// OpenStorage creates a KV implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.KV, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend creates the KV implementation for backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.KV, error) {
	switch backend {
	case storage.BackendBolt:
		return storage.NewBoltKV(filepath.Join(dataDir, boltFilename))
	case storage.BackendBadger:
		return storage.NewBadgerKV(filepath.Join(dataDir, badgerDirname))
	case storage.BackendSQLite:
		return storage.NewSQLiteKV(filepath.Join(dataDir, sqliteFilename))
	case storage.BackendCharm:
		return charm.NewClient(charm.DefaultConfig())
	case storage.BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "reel", "config.json")
}

// Load reads config from disk and applies REEL_* environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultFirstRunConfig()
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.Backend != "" {
		c.Backend = env.Backend
	}
	if env.DataDir != "" {
		c.DataDir = env.DataDir
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.LogFormat != "" {
		c.LogFormat = env.LogFormat
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(GetConfigPath(), data)
}

// atomicWrite replaces path with data via a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset fields are nil
// and leave the defaults in place.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Refresh RefreshConfig `toml:"refresh"`
}

type StorageConfig struct {
	Path *string `toml:"path"`
}

type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// RefreshConfig controls how often the activity rollup is recomputed.
type RefreshConfig struct {
	Seconds *int `toml:"seconds"`
}

// Config is the resolved configuration.
type Config struct {
	DBPath   string
	LogFile  string
	LogLevel string
	Refresh  time.Duration
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		DBPath:   DefaultDBPath(),
		LogFile:  DefaultLogPath(),
		LogLevel: "info",
		Refresh:  5 * time.Second,
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the fields set in f onto c.
func (f FileConfig) Apply(c Config) (Config, error) {
	if f.Storage.Path != nil && *f.Storage.Path != "" {
		c.DBPath = *f.Storage.Path
	}
	if f.Log.Level != nil {
		c.LogLevel = *f.Log.Level
	}
	if f.Log.File != nil {
		// An explicit empty string disables the log file.
		c.LogFile = *f.Log.File
	}
	if f.Refresh.Seconds != nil {
		if *f.Refresh.Seconds < 1 {
			return c, fmt.Errorf("refresh seconds must be at least 1, got %d", *f.Refresh.Seconds)
		}
		c.Refresh = time.Duration(*f.Refresh.Seconds) * time.Second
	}
	return c, nil
}

// Load reads the config file at path and resolves it against Defaults.
func Load(path string) (Config, error) {
	fc, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	return fc.Apply(Defaults())
}

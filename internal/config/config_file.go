package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig is the TOML form of Config. Booleans and the limit are pointers
// so an absent key leaves the current value alone.
type FileConfig struct {
	Format  string `toml:"format"`
	DB      string `toml:"db"`
	Steps   *bool  `toml:"steps"`
	Verbose *bool  `toml:"verbose"`
	Limit   *int   `toml:"history_limit"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.chembal/config.toml, or "" if the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".chembal", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to cfg.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("format", fc.Format, &cfg.Format)
	s.setString("db", fc.DB, &cfg.DB)
	s.setBool("steps", fc.Steps, &cfg.Steps)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)
	s.setInt("limit", fc.Limit, &cfg.Limit)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Resolve layers the config file at path and the environment over cfg and
// validates the result. An empty path means DefaultConfigPath, which may be
// absent; an explicit path must exist.
func Resolve(cfg *Config, path string, changed map[string]bool) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" && (explicit || FileExists(path)) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		ApplyFileConfig(cfg, fc, changed)
	}

	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}

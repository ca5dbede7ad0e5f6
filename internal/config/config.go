// Package config resolves chembal CLI settings from flags, environment and
// an optional TOML file. Explicitly set flags always win, then environment
// variables, then the file, then defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultHistoryLimit is the number of records history lists by default.
const DefaultHistoryLimit = 20

// Environment variables read by ApplyEnvConfig.
const (
	EnvDB      = "CHEMBAL_DB"
	EnvFormat  = "CHEMBAL_FORMAT"
	EnvSteps   = "CHEMBAL_STEPS"
	EnvVerbose = "CHEMBAL_VERBOSE"
	EnvLimit   = "CHEMBAL_HISTORY_LIMIT"
)

// Config holds CLI configuration for chembal.
type Config struct {
	Format  string
	DB      string
	Steps   bool
	Verbose bool
	Limit   int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Format: FormatText,
		Limit:  DefaultHistoryLimit,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", c.Format)
	}
	if c.Limit < 0 {
		return fmt.Errorf("history limit must be non-negative, got %d", c.Limit)
	}
	return nil
}

// ApplyEnvConfig applies CHEMBAL_* environment variables to cfg.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("db", os.Getenv(EnvDB), &cfg.DB)
	s.setString("format", os.Getenv(EnvFormat), &cfg.Format)
	s.setBoolFromString("steps", os.Getenv(EnvSteps), &cfg.Steps)
	s.setBoolFromString("verbose", os.Getenv(EnvVerbose), &cfg.Verbose)

	return s.setIntFromString("limit", os.Getenv(EnvLimit), &cfg.Limit)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination.
// Range checks are left to Config.Validate.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

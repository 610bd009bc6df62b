package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/bankdomain/internal/domain"
	"github.com/bft-labs/bankdomain/pkg/account"
	"github.com/bft-labs/bankdomain/pkg/log"
)

// Config holds CLI configuration for bankdomain.
type Config struct {
	// CatalogFile replaces the embedded catalog when set.
	CatalogFile string

	Style    string
	LogLevel string

	Concurrency   int
	Color         bool
	JSON          bool
	Watch         bool
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Style:         account.StylePretty.String(),
		LogLevel:      "warn",
		Color:         true,
		DebounceDelay: 200 * time.Millisecond,
	}
}

// Validate checks the configuration for errors. Errors wrap
// domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := account.ParseStyle(c.Style); err != nil {
		return fmt.Errorf("%w: style: %w", domain.ErrInvalidConfig, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level: %w", domain.ErrInvalidConfig, err)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", domain.ErrInvalidConfig)
	}
	if c.Watch && c.CatalogFile == "" {
		return fmt.Errorf("%w: watch requires a catalog file", domain.ErrInvalidConfig)
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// configSetter applies configuration values unless the corresponding flag
// was set explicitly on the command line.
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

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses an environment value as a positive int.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString treats "true" and "1" as true and anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

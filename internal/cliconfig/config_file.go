package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	CatalogFile   string `toml:"catalog"`
	Style         string `toml:"style"`
	LogLevel      string `toml:"log_level"`
	Concurrency   int    `toml:"concurrency"`
	Color         *bool  `toml:"color"`
	JSON          *bool  `toml:"json"`
	Watch         *bool  `toml:"watch"`
	DebounceDelay string `toml:"debounce"`
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

// DefaultConfigPath returns ~/.bankdomain/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".bankdomain", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("catalog", fc.CatalogFile, &cfg.CatalogFile)
	s.setString("style", fc.Style, &cfg.Style)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setInt("concurrency", fc.Concurrency, &cfg.Concurrency)

	s.setBool("color", fc.Color, &cfg.Color)
	s.setBool("json", fc.JSON, &cfg.JSON)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return s.setDuration("debounce", fc.DebounceDelay, &cfg.DebounceDelay)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

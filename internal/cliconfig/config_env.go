package cliconfig

import "os"

// Environment variables read by ApplyEnvConfig.
const (
	EnvCatalog     = "BANKDOMAIN_CATALOG"
	EnvStyle       = "BANKDOMAIN_STYLE"
	EnvLogLevel    = "BANKDOMAIN_LOG_LEVEL"
	EnvConcurrency = "BANKDOMAIN_CONCURRENCY"
	EnvColor       = "BANKDOMAIN_COLOR"
	EnvJSON        = "BANKDOMAIN_JSON"
	EnvWatch       = "BANKDOMAIN_WATCH"
	EnvDebounce    = "BANKDOMAIN_DEBOUNCE"
)

// ApplyEnvConfig applies BANKDOMAIN_* environment variables to cfg, skipping
// values whose flag was set explicitly.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("catalog", os.Getenv(EnvCatalog), &cfg.CatalogFile)
	s.setString("style", os.Getenv(EnvStyle), &cfg.Style)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)

	if err := s.setIntFromString("concurrency", os.Getenv(EnvConcurrency), &cfg.Concurrency); err != nil {
		return err
	}

	s.setBoolFromString("color", os.Getenv(EnvColor), &cfg.Color)
	s.setBoolFromString("json", os.Getenv(EnvJSON), &cfg.JSON)
	s.setBoolFromString("watch", os.Getenv(EnvWatch), &cfg.Watch)

	return s.setDuration("debounce", os.Getenv(EnvDebounce), &cfg.DebounceDelay)
}

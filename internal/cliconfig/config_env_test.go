package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				EnvCatalog:     "/env/banks.csv",
				EnvStyle:       "default",
				EnvLogLevel:    "error",
				EnvConcurrency: "3",
				EnvColor:       "0",
				EnvJSON:        "true",
				EnvWatch:       "1",
				EnvDebounce:    "2s",
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: Config{
				CatalogFile:   "/env/banks.csv",
				Style:         "default",
				LogLevel:      "error",
				Concurrency:   3,
				Color:         false,
				JSON:          true,
				Watch:         true,
				DebounceDelay: 2 * time.Second,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				EnvCatalog: "/env/banks.csv",
				EnvStyle:   "default",
			},
			changed: map[string]bool{"catalog": true},
			initial: Config{CatalogFile: "/flag/banks.csv", Style: "pretty"},
			expected: Config{
				CatalogFile: "/flag/banks.csv",
				Style:       "default",
			},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{EnvDebounce: "not-a-duration"},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{EnvConcurrency: "many"},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name:     "non-positive int is ignored",
			envVars:  map[string]string{EnvConcurrency: "0"},
			changed:  map[string]bool{},
			initial:  Config{Concurrency: 2},
			expected: Config{Concurrency: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Precedence order: flag > env > file > default.
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	fileConf := FileConfig{
		CatalogFile: "/file/banks.csv",
		Style:       "default",
		LogLevel:    "debug",
		JSON:        &trueVal,
	}

	t.Setenv(EnvCatalog, "/env/banks.csv")
	t.Setenv(EnvLogLevel, "error")

	changed := map[string]bool{"catalog": true}

	cfg := DefaultConfig()
	cfg.CatalogFile = "/flag/banks.csv"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.CatalogFile != "/flag/banks.csv" {
		t.Errorf("CatalogFile = %v, want /flag/banks.csv (flag should win)", cfg.CatalogFile)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %v, want error (env should override file)", cfg.LogLevel)
	}
	if cfg.Style != "default" {
		t.Errorf("Style = %v, want default (file should set)", cfg.Style)
	}
	if !cfg.JSON {
		t.Error("JSON = false, want true (file should set)")
	}
	if !cfg.Color {
		t.Error("Color = false, want true (default should remain)")
	}
}

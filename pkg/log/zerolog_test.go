package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(&buf, zerolog.WarnLevel)

	logger.Info("hidden", String("k", "v"))
	if buf.Len() != 0 {
		t.Fatalf("info entry written at warn level: %q", buf.String())
	}

	logger.Warn("catalog reload failed", String("path", "/tmp/x.csv"), Err(errors.New("boom")))
	out := buf.String()
	for _, want := range []string{"catalog reload failed", "/tmp/x.csv", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(zerolog.New(&buf))

	logger.Error("parsed",
		Int("line", 3),
		Bool("valid", false),
		Strings("banks", []string{"SEB", "NORDEA"}),
		Any("kind", struct{ A int }{1}),
	)

	out := buf.String()
	for _, want := range []string{`"line":3`, `"valid":false`, `"banks":["SEB","NORDEA"]`, `"kind":{"A":1}`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"", zerolog.InfoLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"trace", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("x")
	l.Info("x", String("a", "b"))
	l.Warn("x")
	l.Error("x", Err(errors.New("e")))
}

package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewBuildsBothModes(t *testing.T) {
	for _, mode := range []string{"prod", "dev"} {
		log, err := New(mode, "warn")
		if err != nil {
			t.Fatalf("new %s: %v", mode, err)
		}
		if log.SugaredLogger.Desugar().Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("%s: info should be disabled at warn level", mode)
		}
		log.With("component", "test").Warn("hello", "k", "v")
	}
}

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		Input string
		Want  zapcore.Level
	}{
		{Input: "debug", Want: zapcore.DebugLevel},
		{Input: "warn", Want: zapcore.WarnLevel},
		{Input: "error", Want: zapcore.ErrorLevel},
		{Input: "", Want: zapcore.InfoLevel},
		{Input: "verbose", Want: zapcore.InfoLevel},
	}
	for _, c := range tests {
		if got := ParseLevel(c.Input); got != c.Want {
			t.Errorf("%q: level mismatched! want %s, got %s", c.Input, c.Want, got)
		}
	}
}

func TestInitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "sheetcalc.log")
	if err := Init(Options{Level: "debug", File: file}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("cycle detected", "cell", "A1")
	Close()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "cycle detected") {
		t.Fatalf("log file should contain message, got %q", data)
	}
}

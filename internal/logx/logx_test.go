package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"trace", LevelTrace},
		{"", LevelInfo},
		{"loud", LevelInfo},
	}

	for _, tc := range testCases {
		if got := parseLevel(tc.input, LevelInfo); got != tc.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestWriterLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "debug").With(String("comp", "scheduler"))

	log.Warn("bad deadline", String("raw", "31/31/2020"), Int("n", 2), Err(errors.New("boom")))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("Expected JSON line, got %q: %v", buf.String(), err)
	}
	if m["message"] != "bad deadline" {
		t.Errorf("Expected message field, got %v", m["message"])
	}
	if m["comp"] != "scheduler" || m["raw"] != "31/31/2020" {
		t.Errorf("Missing fields in %v", m)
	}
	if m["level"] != "warn" {
		t.Errorf("Expected level warn, got %v", m["level"])
	}
}

func TestWriterLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn")

	log.Debug("hidden")
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("Expected nothing below warn, got %q", buf.String())
	}
	if log.Enabled(LevelDebug) {
		t.Error("Expected debug to be disabled")
	}
}

func TestZeroLoggerIsSafe(t *testing.T) {
	var log Logger
	log.Info("nothing happens")
	Nop().Error("still nothing")
}

func TestServiceFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "studybuddy.log")
	svc, log := New(Config{Level: "info", File: path})
	defer svc.Close()

	log.Info("schedule generated", Int("blocks", 4))

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), `"blocks":4`) {
		t.Errorf("Expected blocks field in log file, got %q", content)
	}
}

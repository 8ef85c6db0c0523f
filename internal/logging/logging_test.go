package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(Config{Level: "warn"}, buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("path", "/index.html").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["path"] != "/index.html" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("timestamp field missing")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(Config{Level: "verbose"}, buf)

	logger.Debug().Msg("debug")
	logger.Info().Msg("info")

	if strings.Contains(buf.String(), `"message":"debug"`) {
		t.Error("debug line must be filtered at info level")
	}
	if !strings.Contains(buf.String(), `"message":"info"`) {
		t.Error("info line missing")
	}
}

func TestNew_Pretty(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(Config{Level: "info", Pretty: true}, buf)

	logger.Info().Msg("hello")

	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("pretty output must not be JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("message missing: %q", buf.String())
	}
}

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(zerolog.New(&buf))

	logger.Info("request",
		String("path", "/qa"),
		Int("status", 200),
		Bool("proxied", false),
		Duration("dur", 1500*time.Millisecond),
		Strings("prefixes", []string{"/ask", "/chat"}),
		Err(errors.New("boom")),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v\n%s", err, buf.String())
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "request" {
		t.Errorf("message = %v, want request", entry["message"])
	}
	if entry["path"] != "/qa" {
		t.Errorf("path = %v, want /qa", entry["path"])
	}
	if entry["status"] != float64(200) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
	if _, ok := entry["prefixes"].([]any); !ok {
		t.Errorf("prefixes = %T, want array", entry["prefixes"])
	}
}

func TestZerologAdapter_DisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	logger.Debug("hidden", String("k", "v"))
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("disabled levels wrote output: %q", buf.String())
	}

	logger.Warn("shown")
	if buf.Len() == 0 {
		t.Error("warn entry missing")
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func capture(t *testing.T, config Config) *bytes.Buffer {
	t.Helper()
	Initialize(config)
	var buf bytes.Buffer
	SetOutput(&buf)
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, Config{Level: WarnLevel})

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn leaked through: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn/error messages missing: %q", out)
	}
}

func TestFieldsRendered(t *testing.T) {
	buf := capture(t, Config{Level: InfoLevel})

	Info("installing", String("filename", "plugin.jar"), Int("count", 3))

	out := buf.String()
	if !strings.Contains(out, "filename=plugin.jar") {
		t.Errorf("string field missing: %q", out)
	}
	if !strings.Contains(out, "count=3") {
		t.Errorf("int field missing: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	buf := capture(t, Config{Level: InfoLevel, JSON: true})

	Info("hello", String("k", "v"))

	var e struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &e); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if e.Level != "INFO" || e.Message != "hello" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Fields["k"] != "v" {
		t.Errorf("field missing from JSON entry: %+v", e)
	}
}

func TestColorCodes(t *testing.T) {
	buf := capture(t, Config{Level: InfoLevel, UseColor: true})
	Warn("colored")
	if !strings.Contains(buf.String(), "\033[33m") {
		t.Errorf("expected yellow escape in %q", buf.String())
	}

	buf = capture(t, Config{Level: InfoLevel, UseColor: false})
	Warn("plain")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("unexpected escape in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"ERROR", ErrorLevel},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

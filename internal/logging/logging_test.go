package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("with default output", func(t *testing.T) {
		logger := NewLogger(Config{Level: InfoLevel})
		if logger == nil {
			t.Fatal("NewLogger returned nil")
		}
	})

	t.Run("with custom output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(Config{Level: InfoLevel, Output: buf})
		if logger.writer != buf {
			t.Error("Logger should use provided output writer")
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		configLvl Level
		logLvl    Level
		shouldLog bool
	}{
		{"debug logs debug", DebugLevel, DebugLevel, true},
		{"debug logs error", DebugLevel, ErrorLevel, true},
		{"info skips debug", InfoLevel, DebugLevel, false},
		{"info logs info", InfoLevel, InfoLevel, true},
		{"warn skips info", WarnLevel, InfoLevel, false},
		{"warn logs warn", WarnLevel, WarnLevel, true},
		{"error skips warn", ErrorLevel, WarnLevel, false},
		{"error logs error", ErrorLevel, ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLogger(Config{Level: tt.configLvl, Output: buf})

			logger.log(tt.logLvl, "test message", nil)

			hasOutput := buf.Len() > 0
			if hasOutput != tt.shouldLog {
				t.Errorf("shouldLog = %v, but hasOutput = %v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: buf})

	logger.Info("catalog loaded", map[string]interface{}{"products": 42})

	var e map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if e["level"] != "info" {
		t.Errorf("level = %v, want info", e["level"])
	}
	if e["message"] != "catalog loaded" {
		t.Errorf("message = %v, want 'catalog loaded'", e["message"])
	}
	fields, ok := e["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("fields missing from entry: %v", e)
	}
	if fields["products"] != float64(42) {
		t.Errorf("fields.products = %v, want 42", fields["products"])
	}
}

func TestHumanFormatSortsFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: buf})

	logger.Info("scored", map[string]interface{}{
		"total": 81.2,
		"id":    7,
		"rank":  1,
	})

	out := buf.String()
	idIdx := strings.Index(out, "id=")
	totalIdx := strings.Index(out, "total=")
	if idIdx == -1 || totalIdx == -1 {
		t.Fatalf("expected both fields in output, got: %s", out)
	}
	if idIdx > totalIdx {
		t.Errorf("fields should be sorted by key, got: %s", out)
	}
}

func TestNamed(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: buf})

	api := logger.Named("api")
	api.Info("listening", nil)

	if !strings.Contains(buf.String(), "(api)") {
		t.Errorf("expected component tag in output, got: %s", buf.String())
	}

	buf.Reset()
	nested := api.Named("middleware")
	nested.Info("wrapped", nil)
	if !strings.Contains(buf.String(), "(api.middleware)") {
		t.Errorf("expected nested component tag, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"info", InfoLevel},
		{"", InfoLevel},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != JSONFormat {
		t.Errorf("ParseFormat(json) = %v", got)
	}
	if got := ParseFormat("human"); got != HumanFormat {
		t.Errorf("ParseFormat(human) = %v", got)
	}
	if got := ParseFormat("anything"); got != HumanFormat {
		t.Errorf("ParseFormat should default to human, got %v", got)
	}
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/document-registry/pkg/logging"
)

func TestConfig_Finalize(t *testing.T) {
	os.Setenv("TEST_LOG_LEVEL", "debug")
	defer os.Unsetenv("TEST_LOG_LEVEL")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	cfg := &logging.Config{Level: "verbose"}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() should reject unknown level")
	}
}

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name   string
		format logging.Format
		check  func(t *testing.T, out string)
	}{
		{
			"json",
			logging.FormatJSON,
			func(t *testing.T, out string) {
				var entry map[string]any
				if err := json.Unmarshal([]byte(out), &entry); err != nil {
					t.Fatalf("output is not JSON: %v", err)
				}
				if entry["msg"] != "document created" {
					t.Errorf("msg = %v", entry["msg"])
				}
			},
		},
		{
			"text",
			logging.FormatText,
			func(t *testing.T, out string) {
				if !strings.Contains(out, "msg=\"document created\"") {
					t.Errorf("unexpected output: %s", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: tt.format}, &buf)
			logger.Info("document created", "versie", 100)
			tt.check(t, buf.String())
		})
	}
}

func TestNewWithWriter_FiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}, &buf)

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level: %s", buf.String())
	}
}

func TestConfig_Merge_Source(t *testing.T) {
	on := true
	base := &logging.Config{Source: &on}

	base.Merge(&logging.Config{Format: logging.FormatJSON})
	if !base.AddSource() {
		t.Error("nil overlay Source should keep base setting")
	}

	off := false
	base.Merge(&logging.Config{Source: &off})
	if base.AddSource() {
		t.Error("overlay Source=false should disable source")
	}
}

func TestConfig_Finalize_Output(t *testing.T) {
	os.Setenv("TEST_LOG_OUTPUT", "stderr")
	os.Setenv("TEST_LOG_SOURCE", "true")
	defer os.Unsetenv("TEST_LOG_OUTPUT")
	defer os.Unsetenv("TEST_LOG_SOURCE")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Output: "TEST_LOG_OUTPUT", Source: "TEST_LOG_SOURCE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Output != logging.OutputStderr {
		t.Errorf("Output = %q, want stderr", cfg.Output)
	}
	if !cfg.AddSource() {
		t.Error("AddSource() = false, want true")
	}

	bad := &logging.Config{Output: "syslog"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() should reject unknown output")
	}
}

func TestNewWithWriter_Source(t *testing.T) {
	var buf bytes.Buffer
	on := true
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON, Source: &on}, &buf)
	logger.Info("locked")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := entry["source"]; !ok {
		t.Errorf("missing source attribute: %s", buf.String())
	}
}

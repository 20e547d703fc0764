package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected defaults without a config file, got %v", err)
	}
	if cfg.OutputFormat != "text" || cfg.CollationLocale != "es" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Summary.DelayThresholdDays != 7 || cfg.Summary.TopN != 5 || cfg.Outliers.Limit != 20 {
		t.Errorf("Unexpected threshold defaults: %+v / %+v", cfg.Summary, cfg.Outliers)
	}
	types := cfg.InvoiceTypes()
	if len(types) != 4 || types[0] != entities.InvoiceTypeInvoice {
		t.Errorf("Expected default invoice types, got %v", types)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
log_level: debug
output_format: json
valid_invoice_types: [factura]
summary:
  top_n: 3
  low_fill_rate: 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.OutputFormat != "json" {
		t.Errorf("Expected file values, got %+v", cfg)
	}
	if cfg.Summary.TopN != 3 || cfg.Summary.LowFillRate != 50 || cfg.Summary.HighFillRate != 95 {
		t.Errorf("Expected merged summary config, got %+v", cfg.Summary)
	}
	if types := cfg.InvoiceTypes(); len(types) != 1 || types[0] != entities.InvoiceTypeInvoice {
		t.Errorf("Expected normalized FACTURA, got %v", types)
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{"bad yaml", "log_level: [", "failed to parse"},
		{"bad level", "log_level: chatty", "log_level"},
		{"bad output format", "output_format: pdf", "output_format"},
		{"inverted thresholds", "summary:\n  low_fill_rate: 99\n  high_fill_rate: 90", "thresholds"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for explicitly requested missing file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("info", "json", &buf)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.WithField("view", "category").Info("rendered")
	logger.Debug("hidden")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a single JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["view"] != "category" || entry["msg"] != "rendered" {
		t.Errorf("Unexpected entry %v", entry)
	}

	if _, err := NewLogger("loud", "text", &buf); err == nil {
		t.Error("Expected error for invalid level")
	}
	if _, err := NewLogger("info", "xml", &buf); err == nil {
		t.Error("Expected error for invalid format")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})
}

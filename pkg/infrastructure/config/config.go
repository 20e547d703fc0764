package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/fulfillment/pkg/domain/entities"
)

// DefaultConfigFile is read when no configuration path is given
const DefaultConfigFile = "fulfillment.yaml"

// Output formats accepted by the report renderers
var OutputFormats = []string{"text", "json", "csv", "xlsx"}

// Config is the fulfillment reporting configuration
type Config struct {
	LogLevel                string         `yaml:"log_level"`
	LogFormat               string         `yaml:"log_format"`
	DataDir                 string         `yaml:"data_dir"`
	Workbook                string         `yaml:"workbook"`
	OutputDir               string         `yaml:"output_dir"`
	OutputFormat            string         `yaml:"output_format"`
	ValidInvoiceTypes       []string       `yaml:"valid_invoice_types"`
	ExcludedCategoryKeyword string         `yaml:"excluded_category_keyword"`
	CollationLocale         string         `yaml:"collation_locale"`
	Summary                 SummaryConfig  `yaml:"summary"`
	Outliers                OutliersConfig `yaml:"outliers"`
}

// SummaryConfig holds the executive summary thresholds
type SummaryConfig struct {
	DelayThresholdDays int     `yaml:"delay_threshold_days"`
	HighFillRate       float64 `yaml:"high_fill_rate"`
	LowFillRate        float64 `yaml:"low_fill_rate"`
	TopN               int     `yaml:"top_n"`
}

// OutliersConfig holds the outlier ranking settings
type OutliersConfig struct {
	Limit int `yaml:"limit"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, defaults and validates the configuration at path. A missing
// file at the default location yields the defaults; a missing file that
// was asked for explicitly is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./reports"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if len(cfg.ValidInvoiceTypes) == 0 {
		for _, t := range entities.DefaultValidInvoiceTypes {
			cfg.ValidInvoiceTypes = append(cfg.ValidInvoiceTypes, string(t))
		}
	}
	if cfg.ExcludedCategoryKeyword == "" {
		cfg.ExcludedCategoryKeyword = "producción"
	}
	if cfg.CollationLocale == "" {
		cfg.CollationLocale = "es"
	}
	if cfg.Summary.DelayThresholdDays == 0 {
		cfg.Summary.DelayThresholdDays = 7
	}
	if cfg.Summary.HighFillRate == 0 {
		cfg.Summary.HighFillRate = 95
	}
	if cfg.Summary.LowFillRate == 0 {
		cfg.Summary.LowFillRate = 80
	}
	if cfg.Summary.TopN == 0 {
		cfg.Summary.TopN = 5
	}
	if cfg.Outliers.Limit == 0 {
		cfg.Outliers.Limit = 20
	}
}

// Validate checks the configuration for values no component can work with
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if !isOutputFormat(c.OutputFormat) {
		return fmt.Errorf("output_format must be one of %v, got %q", OutputFormats, c.OutputFormat)
	}
	for _, t := range c.ValidInvoiceTypes {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("valid_invoice_types cannot contain empty entries")
		}
	}
	if c.Summary.DelayThresholdDays < 0 {
		return fmt.Errorf("summary.delay_threshold_days cannot be negative")
	}
	if c.Summary.LowFillRate < 0 || c.Summary.HighFillRate > 100 || c.Summary.LowFillRate > c.Summary.HighFillRate {
		return fmt.Errorf("summary fill rate thresholds must satisfy 0 <= low (%v) <= high (%v) <= 100",
			c.Summary.LowFillRate, c.Summary.HighFillRate)
	}
	if c.Summary.TopN < 0 {
		return fmt.Errorf("summary.top_n cannot be negative")
	}
	if c.Outliers.Limit < 0 {
		return fmt.Errorf("outliers.limit cannot be negative")
	}
	return nil
}

// InvoiceTypes returns the configured valid invoice types in canonical form
func (c *Config) InvoiceTypes() []entities.InvoiceType {
	types := make([]entities.InvoiceType, 0, len(c.ValidInvoiceTypes))
	for _, t := range c.ValidInvoiceTypes {
		types = append(types, entities.ParseInvoiceType(t))
	}
	return types
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

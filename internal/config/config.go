// Package config loads cbpmap settings from the environment and an optional
// YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. CBPMAP_PATHS_OUTPUT_DIR.
// Leaf keys are derived from field names with split_words so an unset
// prefixed key never falls back to a bare name such as STATE.
const EnvPrefix = "CBPMAP"

// Config represents the complete application configuration
type Config struct {
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
	Metadata   MetadataConfig   `yaml:"metadata" envconfig:"METADATA"`
	Retention  RetentionConfig  `yaml:"retention" envconfig:"RETENTION"`
	Catalog    CatalogConfig    `yaml:"catalog" envconfig:"CATALOG"`
}

// PathsConfig contains file system locations
type PathsConfig struct {
	DownloadsDir string `yaml:"downloads_dir" split_words:"true" default:"downloads"`
	OutputDir    string `yaml:"output_dir" split_words:"true" default:"mapped_output"`
	SummaryFile  string `yaml:"summary_file" split_words:"true" default:"pipeline_summary.txt"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" default:"info"`
	Format   string `yaml:"format" split_words:"true" default:"json"`
	Output   string `yaml:"output" split_words:"true" default:"console"`
	FilePath string `yaml:"file_path" split_words:"true" default:"logs/cbpmap.log"`
}

// ExtractionConfig tunes series extraction
type ExtractionConfig struct {
	MinPoints   int  `yaml:"min_points" split_words:"true" default:"8"`
	DateColumns int  `yaml:"date_columns" split_words:"true" default:"3"`
	SkipQA      bool `yaml:"skip_qa" split_words:"true" default:"false"`
}

// MetadataConfig holds the fixed fields written to every metadata record
type MetadataConfig struct {
	AggregationType   string `yaml:"aggregation_type" split_words:"true" default:"UNDEFINED"`
	Annualized        string `yaml:"annualized" split_words:"true" default:"FALSE"`
	State             string `yaml:"state" split_words:"true" default:"ACTIVE"`
	Provider          string `yaml:"provider" split_words:"true" default:"AfricaAI"`
	Source            string `yaml:"source" split_words:"true" default:"RBNZ"`
	SourceDescription string `yaml:"source_description" split_words:"true" default:"Reserve Bank of New Zealand"`
	Country           string `yaml:"country" split_words:"true" default:"NZL"`
	Dataset           string `yaml:"dataset" split_words:"true" default:"CBP"`
}

// RetentionConfig controls cleanup of old downloads and outputs
type RetentionConfig struct {
	// Days is the age after which files are removed; 0 disables cleanup.
	Days int `yaml:"days" split_words:"true" default:"7"`
}

// CatalogConfig configures the optional SQLite catalog
type CatalogConfig struct {
	// Path is the SQLite file; empty disables the catalog.
	Path string `yaml:"path" split_words:"true"`
}

// Constants converts the metadata settings to dataset constants.
func (m MetadataConfig) Constants() models.DatasetConstants {
	return models.DatasetConstants{
		AggregationType:   m.AggregationType,
		Annualized:        m.Annualized,
		State:             m.State,
		Provider:          m.Provider,
		Source:            m.Source,
		SourceDescription: m.SourceDescription,
		Country:           m.Country,
		Dataset:           m.Dataset,
	}
}

// Load reads defaults and environment variables, then overlays the YAML
// file at path when path is non-empty. A missing file is an error only when
// path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile overlays YAML keys present in the file onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Extraction.MinPoints < 1 {
		return fmt.Errorf("extraction.min_points must be at least 1, got %d", c.Extraction.MinPoints)
	}
	if c.Extraction.DateColumns < 1 {
		return fmt.Errorf("extraction.date_columns must be at least 1, got %d", c.Extraction.DateColumns)
	}
	if c.Retention.Days < 0 {
		return fmt.Errorf("retention.days must not be negative, got %d", c.Retention.Days)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("paths.output_dir is required")
	}
	return nil
}

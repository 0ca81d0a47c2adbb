// Package config provides configuration management for the extraction
// pipeline and its optional outputs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"QNNLogParser/pkg/exporting"
	"QNNLogParser/pkg/logparse"
)

// Config holds all extraction options.
type Config struct {
	// Inputs
	LogPath     string
	SummaryPath string
	MarkersPath string

	// Detail table output
	DetailPath   string
	DetailFormat string

	// Graph output
	GenerateGraphs bool
	GraphDir       string

	// Optional InfluxDB sink
	InfluxURL    string
	InfluxOrg    string
	InfluxBucket string
	InfluxToken  string

	// Run identification
	RunID string
}

// Default configuration values.
const (
	DefaultDetailFormat = "csv"
	DefaultGraphDir     = "."

	influxTokenEnv = "QNN_INFLUX_TOKEN"
)

// New creates a Config with default values.
func New() *Config {
	return &Config{
		DetailFormat: DefaultDetailFormat,
		GraphDir:     DefaultGraphDir,
		RunID:        uuid.NewString(),
	}
}

// ApplyDefaults fills in any missing values.
func (c *Config) ApplyDefaults() {
	if c.DetailFormat == "" {
		c.DetailFormat = DefaultDetailFormat
	}
	if c.GraphDir == "" {
		c.GraphDir = DefaultGraphDir
	}
	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	if c.DetailPath == "" && c.LogPath != "" {
		c.DetailPath = c.GenerateDetailPath()
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.LogPath == "" {
		return fmt.Errorf("log path is required")
	}
	if c.SummaryPath == "" {
		return fmt.Errorf("summary record path is required")
	}
	if _, ok := exporting.Get(c.DetailFormat); !ok {
		return fmt.Errorf("invalid detail format: %s (valid: %s)",
			c.DetailFormat, strings.Join(exporting.ValidFormats(), ", "))
	}
	if c.InfluxURL != "" && (c.InfluxOrg == "" || c.InfluxBucket == "") {
		return fmt.Errorf("influx-org and influx-bucket are required with influx-url")
	}
	return nil
}

// GenerateDetailPath derives the detail-table path from the log path.
func (c *Config) GenerateDetailPath() string {
	base := strings.TrimSuffix(c.LogPath, filepath.Ext(c.LogPath))
	return base + "_details" + exporting.GetExtension(c.DetailFormat)
}

// GraphPath derives the chart output path from the log name.
func (c *Config) GraphPath() string {
	base := filepath.Base(c.LogPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.GraphDir, name+"_graphs.html")
}

// LoadEnv pulls optional settings from the environment, reading a .env
// file first when present.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()
	if c.InfluxToken == "" {
		c.InfluxToken = os.Getenv(influxTokenEnv)
	}
}

// LoadMarkers returns the default marker set, overlaid with any overrides
// from a YAML marker file. Keys absent from the file keep their defaults.
func LoadMarkers(path string) (logparse.MarkerSet, error) {
	markers := logparse.DefaultMarkerSet()
	if path == "" {
		return markers, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return markers, fmt.Errorf("failed to read marker file: %w", err)
	}

	var overrides logparse.MarkerSet
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return markers, fmt.Errorf("failed to parse marker file: %w", err)
	}

	markers.Merge(overrides)
	return markers, nil
}

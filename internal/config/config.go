package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/hisdash/internal/dashboard"
	"github.com/gyeh/hisdash/internal/filter"
	"github.com/gyeh/hisdash/internal/normalize"
)

const (
	DefaultTimezone        = "Asia/Ho_Chi_Minh"
	DefaultTargetsPath     = "targets.yaml"
	DefaultGeminiModel     = "gemini-3-flash-preview"
	DefaultDiagnosticModel = "gemini-3-pro-preview"
)

// Environment variables consulted for values not given on the command line.
const (
	EnvSheetID      = "HISDASH_SHEET_ID"
	EnvTargets      = "HISDASH_TARGETS"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvDSN          = "DATABASE_URL"
)

// Config holds all runtime configuration for a hisdash run.
type Config struct {
	DSN       string
	LogFormat string // "text" or "json"
	LogLevel  string

	// Sources. With none configured the synthetic sample is used.
	Files        []string
	SheetID      string
	SnapshotPath string
	SampleSize   int
	SampleSeed   int64

	TargetsPath string
	Timezone    string

	GeminiAPIKey    string
	GeminiModel     string
	DiagnosticModel string
	GeminiBaseURL   string

	ClampNegativeAmounts bool
	Limits               dashboard.Limits
	Selection            filter.Selection

	Format          string // report output: "text" or "json"
	Trend           string // trend bucket: "day" or "month"
	OutPath         string
	MetricsTextfile string
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	SheetID              string           `yaml:"sheet_id"`
	Targets              string           `yaml:"targets"`
	Timezone             string           `yaml:"timezone"`
	ClampNegativeAmounts *bool            `yaml:"clamp_negative_amounts"`
	Limits               dashboard.Limits `yaml:"limits"`
	Facets               filter.Selection `yaml:"facets"`
	Gemini               struct {
		Model           string `yaml:"model"`
		DiagnosticModel string `yaml:"diagnostic_model"`
		BaseURL         string `yaml:"base_url"`
	} `yaml:"gemini"`
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv fills fields still empty from the environment.
func (c *Config) ApplyEnv() {
	setIfEmpty(&c.SheetID, os.Getenv(EnvSheetID))
	setIfEmpty(&c.TargetsPath, os.Getenv(EnvTargets))
	setIfEmpty(&c.GeminiAPIKey, os.Getenv(EnvGeminiAPIKey))
	setIfEmpty(&c.DSN, os.Getenv(EnvDSN))
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set (flags, environment) take precedence over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setIfEmpty(&c.SheetID, yc.SheetID)
	setIfEmpty(&c.TargetsPath, yc.Targets)
	setIfEmpty(&c.Timezone, yc.Timezone)
	setIfEmpty(&c.GeminiModel, yc.Gemini.Model)
	setIfEmpty(&c.DiagnosticModel, yc.Gemini.DiagnosticModel)
	setIfEmpty(&c.GeminiBaseURL, yc.Gemini.BaseURL)
	if yc.ClampNegativeAmounts != nil && !c.ClampNegativeAmounts {
		c.ClampNegativeAmounts = *yc.ClampNegativeAmounts
	}

	mergeInt(&c.Limits.Departments, yc.Limits.Departments)
	mergeInt(&c.Limits.Diseases, yc.Limits.Diseases)
	mergeInt(&c.Limits.Doctors, yc.Limits.Doctors)
	mergeInt(&c.Limits.Services, yc.Limits.Services)

	sel := &c.Selection
	if sel.Period == "" {
		sel.Period = yc.Facets.Period
		sel.From = yc.Facets.From
		sel.To = yc.Facets.To
	}
	if len(sel.Departments) == 0 {
		sel.Departments = yc.Facets.Departments
	}
	if len(sel.Doctors) == 0 {
		sel.Doctors = yc.Facets.Doctors
	}
	if len(sel.PatientClasses) == 0 {
		sel.PatientClasses = yc.Facets.PatientClasses
	}
	if len(sel.ServiceGroups) == 0 {
		sel.ServiceGroups = yc.Facets.ServiceGroups
	}
	return nil
}

// ApplyDefaults fills every remaining empty field with its built-in default.
func (c *Config) ApplyDefaults() {
	setIfEmpty(&c.Timezone, DefaultTimezone)
	setIfEmpty(&c.TargetsPath, DefaultTargetsPath)
	setIfEmpty(&c.GeminiModel, DefaultGeminiModel)
	setIfEmpty(&c.DiagnosticModel, DefaultDiagnosticModel)
	setIfEmpty(&c.Format, "text")
	setIfEmpty(&c.Trend, "month")
	setIfEmpty(&c.LogFormat, "text")
	if c.Selection.Period == "" {
		c.Selection.Period = filter.PeriodAll
	}
	mergeInt(&c.Limits.Departments, dashboard.DefaultLimits.Departments)
	mergeInt(&c.Limits.Diseases, dashboard.DefaultLimits.Diseases)
	mergeInt(&c.Limits.Doctors, dashboard.DefaultLimits.Doctors)
	mergeInt(&c.Limits.Services, dashboard.DefaultLimits.Services)
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", tz, err)
	}
	return loc, nil
}

// NormalizeOptions returns the normalizer options implied by the config.
func (c *Config) NormalizeOptions() (normalize.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return normalize.Options{}, err
	}
	return normalize.Options{ClampNegativeAmounts: c.ClampNegativeAmounts, Location: loc}, nil
}

// UsesSample reports whether no real source is configured.
func (c *Config) UsesSample() bool {
	return len(c.Files) == 0 && strings.TrimSpace(c.SheetID) == "" && c.SnapshotPath == ""
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	for _, f := range c.Files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	if c.SnapshotPath != "" {
		if _, err := os.Stat(c.SnapshotPath); err != nil {
			return fmt.Errorf("snapshot not accessible: %w", err)
		}
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("--sample must not be negative")
	}
	if c.Format != "" && c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", c.Format)
	}
	if c.Trend != "" && c.Trend != "day" && c.Trend != "month" {
		return fmt.Errorf("unknown trend bucket %q (want day or month)", c.Trend)
	}
	if c.Selection.Period != "" && !filter.ValidPeriod(c.Selection.Period) {
		return fmt.Errorf("unknown period %q", c.Selection.Period)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ValidateWithDSN checks both source and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or %s is required", EnvDSN)
	}
	return nil
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = strings.TrimSpace(v)
	}
}

func mergeInt(dst *int, v int) {
	if *dst == 0 && v > 0 {
		*dst = v
	}
}

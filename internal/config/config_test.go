package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gyeh/hisdash/internal/dashboard"
	"github.com/gyeh/hisdash/internal/filter"
)

const sampleYAML = `sheet_id: sheet-from-file
targets: plans/2024.yaml
timezone: UTC
clamp_negative_amounts: true
limits:
  departments: 3
  doctors: 7
facets:
  period: month
  departments: [Nội, Ngoại]
gemini:
  model: gemini-test
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleYAML)

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.SheetID != "sheet-from-file" || c.TargetsPath != "plans/2024.yaml" || c.Timezone != "UTC" {
		t.Errorf("scalar fields not merged: %+v", c)
	}
	if !c.ClampNegativeAmounts {
		t.Error("clamp_negative_amounts not merged")
	}
	if c.Limits.Departments != 3 || c.Limits.Doctors != 7 || c.Limits.Diseases != 0 {
		t.Errorf("limits = %+v", c.Limits)
	}
	if c.Selection.Period != filter.PeriodMonth || len(c.Selection.Departments) != 2 {
		t.Errorf("facets = %+v", c.Selection)
	}
	if c.GeminiModel != "gemini-test" {
		t.Errorf("GeminiModel = %q", c.GeminiModel)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleYAML)

	c := Config{SheetID: "from-flag", Selection: filter.Selection{Period: filter.PeriodYear}}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.SheetID != "from-flag" {
		t.Errorf("SheetID = %q, flag value should win", c.SheetID)
	}
	if c.Selection.Period != filter.PeriodYear {
		t.Errorf("Period = %q, flag value should win", c.Selection.Period)
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := writeFile(t, "config.yaml", "limits: [1, 2\n")
	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	err := c.LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	c := Config{Limits: dashboard.Limits{Doctors: 2}}
	c.ApplyDefaults()
	if c.Timezone != DefaultTimezone || c.GeminiModel != DefaultGeminiModel || c.DiagnosticModel != DefaultDiagnosticModel {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Limits.Doctors != 2 || c.Limits.Diseases != 15 {
		t.Errorf("limits = %+v", c.Limits)
	}
	if c.Selection.Period != filter.PeriodAll {
		t.Errorf("Period = %q", c.Selection.Period)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "HISDASH_TEST_DOTENV=from-file\n")
	t.Setenv("HISDASH_TEST_DOTENV", "")
	os.Unsetenv("HISDASH_TEST_DOTENV")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("HISDASH_TEST_DOTENV"); got != "from-file" {
		t.Errorf("HISDASH_TEST_DOTENV = %q", got)
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSheetID, "env-sheet")
	t.Setenv(EnvDSN, "postgres://env")
	t.Setenv(EnvGeminiAPIKey, "key")

	c := Config{DSN: "postgres://flag"}
	c.ApplyEnv()
	if c.SheetID != "env-sheet" || c.GeminiAPIKey != "key" {
		t.Errorf("env not applied: %+v", c)
	}
	if c.DSN != "postgres://flag" {
		t.Errorf("DSN = %q, flag should win", c.DSN)
	}
}

func TestValidate(t *testing.T) {
	existing := writeFile(t, "bills.csv", "MA_BN\nBN1\n")

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty uses sample", Config{}, false},
		{"existing file", Config{Files: []string{existing}}, false},
		{"missing file", Config{Files: []string{"/nonexistent.csv"}}, true},
		{"negative sample", Config{SampleSize: -1}, true},
		{"bad format", Config{Format: "xml"}, true},
		{"bad period", Config{Selection: filter.Selection{Period: "fortnight"}}, true},
		{"bad timezone", Config{Timezone: "Mars/Olympus"}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() err = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}

	c := Config{}
	if err := c.ValidateWithDSN(); err == nil {
		t.Error("ValidateWithDSN without DSN should fail")
	}
	if !c.UsesSample() {
		t.Error("empty config should use the sample")
	}
}

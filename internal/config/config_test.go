// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/schemareport/pkg/types"
)

// chdirTemp switches into a fresh temp directory for the duration of the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	require.NoError(t, os.Chdir(tmpDir))
	return tmpDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.False(t, cfg.DisableSchemaValidation)
	assert.True(t, cfg.LogAPIUI)
	assert.True(t, cfg.Styles.IsZero())
	assert.Equal(t, "github", cfg.Report.HighlightStyle)
	assert.Equal(t, `[data-report-section="response-body"]`, cfg.Report.ResponseBodySelector)
	assert.Empty(t, cfg.Report.Output)
	assert.Contains(t, cfg.Source.Include, "**/*.json")
	assert.Contains(t, cfg.Source.Exclude, "node_modules/**")
	assert.Equal(t, 500, cfg.Watch.Debounce)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_NoConfigFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	// Should match the defaults
	assert.False(t, cfg.DisableSchemaValidation)
	assert.True(t, cfg.LogAPIUI)
	assert.Equal(t, "github", cfg.Report.HighlightStyle)
	assert.Equal(t, 500, cfg.Watch.Debounce)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	configContent := `
disableSchemaValidation: true
logApiUi: false
styles:
  iconPropertyError: "🟦"
  colorPropertyMissing: "#00f"
report:
  highlightStyle: monokai
  responseBodySelector: "#response"
  output: out/report.html
watch:
  debounce: 250
log:
  level: debug
  format: json
`
	err := os.WriteFile(filepath.Join(tmpDir, "schemareport.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.DisableSchemaValidation)
	assert.False(t, cfg.LogAPIUI)
	assert.Equal(t, types.IssueStyles{IconPropertyError: "🟦", ColorPropertyMissing: "#00f"}, cfg.Styles)
	assert.Equal(t, "monokai", cfg.Report.HighlightStyle)
	assert.Equal(t, "#response", cfg.Report.ResponseBodySelector)
	assert.Equal(t, "out/report.html", cfg.Report.Output)
	assert.Equal(t, 250, cfg.Watch.Debounce)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_JSONConfigFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	configContent := `{
  "logApiUi": false,
  "styles": {"iconPropertyMissing": "🟥"},
  "source": {"include": ["payloads/**/*.json"]}
}`
	err := os.WriteFile(filepath.Join(tmpDir, "schemareport.json"), []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.LogAPIUI)
	assert.Equal(t, "🟥", cfg.Styles.IconPropertyMissing)
	assert.Equal(t, []string{"payloads/**/*.json"}, cfg.Source.Include)
}

func TestLoad_DotPrefixedConfigFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	err := os.WriteFile(filepath.Join(tmpDir, ".schemareport.yaml"), []byte("report:\n  highlightStyle: dracula\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dracula", cfg.Report.HighlightStyle)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom-config.yaml")

	err := os.WriteFile(configPath, []byte("watch:\n  debounce: 50\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Watch.Debounce)
}

func TestLoad_ConfigFilePriority(t *testing.T) {
	tmpDir := chdirTemp(t)

	// schemareport.yaml wins over .schemareport.yaml
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "schemareport.yaml"), []byte("log:\n  level: warn\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".schemareport.yaml"), []byte("log:\n  level: error\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("report: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoad_ToggleEnvironment(t *testing.T) {
	tests := []struct {
		name           string
		disable        string
		logUI          string
		wantDisabled   bool
		wantSuppressUI bool
	}{
		{name: "unset", wantDisabled: false, wantSuppressUI: false},
		{name: "exact true disables validation", disable: "true", wantDisabled: true},
		{name: "capitalised true is ignored", disable: "True", wantDisabled: false},
		{name: "one is ignored", disable: "1", wantDisabled: false},
		{name: "exact false suppresses ui", logUI: "false", wantSuppressUI: true},
		{name: "capitalised false is ignored", logUI: "FALSE", wantSuppressUI: false},
		{name: "zero is ignored", logUI: "0", wantSuppressUI: false},
		{name: "both", disable: "true", logUI: "false", wantDisabled: true, wantSuppressUI: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(EnvDisableValidation, tt.disable)
			t.Setenv(EnvLogAPIUI, tt.logUI)
			if tt.disable == "" {
				os.Unsetenv(EnvDisableValidation)
			}
			if tt.logUI == "" {
				os.Unsetenv(EnvLogAPIUI)
			}

			cfg, err := Load("")
			require.NoError(t, err)

			toggles := cfg.Toggles()
			assert.Equal(t, tt.wantDisabled, toggles.DisableValidation)
			assert.Equal(t, tt.wantSuppressUI, toggles.SuppressUI)
		})
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	tmpDir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "schemareport.yaml"), []byte("logApiUi: false\nlog:\n  level: warn\n"), 0644))

	t.Setenv(EnvLogAPIUI, "true")
	t.Setenv("SCHEMAREPORT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.LogAPIUI)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_SingleErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad error color", func(c *Config) { c.Styles.ColorPropertyError = "orange" }, "styles.colorPropertyError"},
		{"bad missing color", func(c *Config) { c.Styles.ColorPropertyMissing = "#12345" }, "styles.colorPropertyMissing"},
		{"unknown highlight style", func(c *Config) { c.Report.HighlightStyle = "no-such-style" }, "report.highlightStyle"},
		{"empty highlight style", func(c *Config) { c.Report.HighlightStyle = "" }, "report.highlightStyle"},
		{"empty selector", func(c *Config) { c.Report.ResponseBodySelector = "" }, "report.responseBodySelector"},
		{"invalid selector", func(c *Config) { c.Report.ResponseBodySelector = "div[" }, "report.responseBodySelector"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var valErrs ValidationErrors
			require.ErrorAs(t, err, &valErrs)
			require.Len(t, valErrs, 1)
			assert.Equal(t, tt.field, valErrs[0].Field)
		})
	}
}

func TestValidate_ShortAndLongColors(t *testing.T) {
	cfg := Default()
	cfg.Styles.ColorPropertyError = "#abc"
	cfg.Styles.ColorPropertyMissing = "#C10000"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Styles.ColorPropertyError = "red"

	err := cfg.Validate()
	require.Error(t, err)

	var valErrs ValidationErrors
	require.ErrorAs(t, err, &valErrs)
	require.Len(t, valErrs, 3)
	assert.Equal(t, "log.format", valErrs[0].Field)
	assert.Equal(t, "log.level", valErrs[1].Field)
	assert.Equal(t, "styles.colorPropertyError", valErrs[2].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "log.level",
		Message: "unsupported log level",
	}
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "unsupported log level")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
		{Field: "field2", Message: "error2"},
	}
	errStr := errs.Error()
	assert.Contains(t, errStr, "field1")
	assert.Contains(t, errStr, "error1")
	assert.Contains(t, errStr, "field2")
	assert.Contains(t, errStr, "error2")
}

func TestValidationErrors_ErrorEmpty(t *testing.T) {
	errs := ValidationErrors{}
	assert.Equal(t, "no validation errors", errs.Error())
}

func TestValidationErrors_ErrorSingle(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
	}
	// Single error should use the ValidationError format
	assert.Contains(t, errs.Error(), "config validation error")
}

func TestToggles(t *testing.T) {
	cfg := Default()
	assert.Equal(t, types.Toggles{}, cfg.Toggles())

	cfg.DisableSchemaValidation = true
	cfg.LogAPIUI = false
	assert.Equal(t, types.Toggles{DisableValidation: true, SuppressUI: true}, cfg.Toggles())
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		contains string
		dropped  bool
	}{
		{name: "text info", level: "info", format: "text", contains: "msg=hello"},
		{name: "json info", level: "info", format: "json", contains: `"msg":"hello"`},
		{name: "error level drops info", level: "error", format: "text", dropped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Log.Level = tt.level
			cfg.Log.Format = tt.format

			var buf bytes.Buffer
			cfg.Logger(&buf).Info("hello")

			if tt.dropped {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "schemareport.yaml"), []byte("report:\n  output: here.html\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "here.html", cfg.Report.Output)
}

func TestLoadFromPath_NoConfig(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadFromPath(t.TempDir())
	require.NoError(t, err)

	// Should match the defaults
	assert.Equal(t, "github", cfg.Report.HighlightStyle)
}

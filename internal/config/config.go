// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for schemareport.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/andybalholm/cascadia"
	"github.com/spf13/viper"

	"github.com/api2spec/schemareport/pkg/report"
	"github.com/api2spec/schemareport/pkg/types"
)

const (
	// EnvDisableValidation disables schema validation when set to "true".
	EnvDisableValidation = "DISABLE_SCHEMA_VALIDATION"

	// EnvLogAPIUI suppresses browser reporting when set to "false".
	EnvLogAPIUI = "LOG_API_UI"

	envPrefix = "SCHEMAREPORT"
)

// Config represents the schemareport configuration.
type Config struct {
	// DisableSchemaValidation skips validation and returns data unchanged
	DisableSchemaValidation bool `mapstructure:"-" yaml:"disableSchemaValidation" json:"disableSchemaValidation"`

	// LogAPIUI enables injecting failure reports into a browser page
	LogAPIUI bool `mapstructure:"-" yaml:"logApiUi" json:"logApiUi"`

	// Styles are process-level issue style overrides, layered under per-call overrides
	Styles types.IssueStyles `mapstructure:"styles" yaml:"styles" json:"styles"`

	// Report contains report rendering configuration
	Report ReportConfig `mapstructure:"report" yaml:"report" json:"report"`

	// Source contains payload discovery configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`

	// Log contains logging configuration
	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`
}

// ReportConfig contains report rendering configuration.
type ReportConfig struct {
	// HighlightStyle is the chroma style used for report markup
	HighlightStyle string `mapstructure:"highlightStyle" yaml:"highlightStyle" json:"highlightStyle"`

	// ResponseBodySelector selects the response body section of a cooperating report viewer
	ResponseBodySelector string `mapstructure:"responseBodySelector" yaml:"responseBodySelector" json:"responseBodySelector"`

	// Output is the HTML report file written by the CLI (empty disables it)
	Output string `mapstructure:"output" yaml:"output" json:"output"`
}

// SourceConfig contains payload discovery configuration.
type SourceConfig struct {
	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level" json:"level"`

	// Format is the log output format (text, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"schemareport.yaml",
	"schemareport.json",
	".schemareport.yaml",
	".schemareport.json",
}

var (
	supportedLogLevels  = []string{"debug", "info", "warn", "error"}
	supportedLogFormats = []string{"text", "json"}

	hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

var defaultInclude = []string{"**/*.json", "**/*.yaml", "**/*.yml"}

var defaultExclude = []string{
	"node_modules/**",
	".git/**",
	"vendor/**",
	"schemareport.yaml",
	"schemareport.json",
	".schemareport.yaml",
	".schemareport.json",
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DisableSchemaValidation: false,
		LogAPIUI:                true,
		Report: ReportConfig{
			HighlightStyle:       report.DefaultHighlightStyle,
			ResponseBodySelector: report.ResponseBodySelector,
		},
		Source: SourceConfig{
			Include: slices.Clone(defaultInclude),
			Exclude: slices.Clone(defaultExclude),
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads the configuration from a file and the environment.
// It searches for config files in the following order:
// 1. schemareport.yaml
// 2. schemareport.json
// 3. .schemareport.yaml
// 4. .schemareport.json
//
// If configPath is provided, it will use that path instead. The environment
// applies whether or not a file is found: DISABLE_SCHEMA_VALIDATION and
// LOG_API_UI for the toggles, SCHEMAREPORT_<KEY> for everything else.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if configPath == "" {
		configPath = ConfigFilePath()
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The toggles match exact strings only.
	cfg.DisableSchemaValidation = v.GetString("disableSchemaValidation") == "true"
	cfg.LogAPIUI = v.GetString("logApiUi") != "false"

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Load("")
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("disableSchemaValidation", false)
	v.SetDefault("logApiUi", true)
	v.SetDefault("styles.iconPropertyError", "")
	v.SetDefault("styles.colorPropertyError", "")
	v.SetDefault("styles.iconPropertyMissing", "")
	v.SetDefault("styles.colorPropertyMissing", "")
	v.SetDefault("report.highlightStyle", report.DefaultHighlightStyle)
	v.SetDefault("report.responseBodySelector", report.ResponseBodySelector)
	v.SetDefault("report.output", "")
	v.SetDefault("source.include", defaultInclude)
	v.SetDefault("source.exclude", defaultExclude)
	v.SetDefault("watch.debounce", 500)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// bindEnv wires the environment into viper.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("disableSchemaValidation", EnvDisableValidation)
	_ = v.BindEnv("logApiUi", EnvLogAPIUI)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	// Validate style colors
	for field, color := range map[string]string{
		"styles.colorPropertyError":   c.Styles.ColorPropertyError,
		"styles.colorPropertyMissing": c.Styles.ColorPropertyMissing,
	} {
		if color != "" && !hexColor.MatchString(color) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid color %q, must be #rgb or #rrggbb", color),
			})
		}
	}

	// Validate report settings
	if c.Report.HighlightStyle == "" {
		errs = append(errs, ValidationError{
			Field:   "report.highlightStyle",
			Message: "highlight style is required",
		})
	} else if !slices.Contains(styles.Names(), c.Report.HighlightStyle) {
		errs = append(errs, ValidationError{
			Field:   "report.highlightStyle",
			Message: fmt.Sprintf("unknown highlight style %q", c.Report.HighlightStyle),
		})
	}

	if c.Report.ResponseBodySelector == "" {
		errs = append(errs, ValidationError{
			Field:   "report.responseBodySelector",
			Message: "selector is required",
		})
	} else if _, err := cascadia.Compile(c.Report.ResponseBodySelector); err != nil {
		errs = append(errs, ValidationError{
			Field:   "report.responseBodySelector",
			Message: fmt.Sprintf("invalid selector %q: %v", c.Report.ResponseBodySelector, err),
		})
	}

	// Validate watch debounce
	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	// Validate logging
	if c.Log.Level != "" && !slices.Contains(supportedLogLevels, c.Log.Level) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unsupported log level %q, must be one of: %s", c.Log.Level, strings.Join(supportedLogLevels, ", ")),
		})
	}
	if c.Log.Format != "" && !slices.Contains(supportedLogFormats, c.Log.Format) {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("unsupported log format %q, must be one of: %s", c.Log.Format, strings.Join(supportedLogFormats, ", ")),
		})
	}

	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })
		return errs
	}

	return nil
}

// Toggles returns the process-level switches derived from the configuration.
func (c *Config) Toggles() types.Toggles {
	return types.Toggles{
		DisableValidation: c.DisableSchemaValidation,
		SuppressUI:        !c.LogAPIUI,
	}
}

// Logger builds a slog logger writing to w according to the log settings.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Log.Level)}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConfigFilePath returns the path of the config file in the working
// directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

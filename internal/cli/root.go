// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for schemareport.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/api2spec/schemareport/internal/config"
	"github.com/api2spec/schemareport/pkg/schemacheck"
)

// Exit codes returned by the validate command.
const (
	ExitCodePass  = 0 // Every payload matches the schema
	ExitCodeFail  = 1 // At least one payload does not match
	ExitCodeError = 2 // Error during validation
)

// Global flags
var (
	cfgFile string
	output  string
	format  string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "schemareport",
	Short: "Response schema validation with annotated HTML reports",
	Long: `schemareport validates API response payloads against JSON Schema,
Swagger 2.0 and OpenAPI 3.x documents.

Failing payloads are reported as an annotated, syntax-highlighted copy of the
payload: violating values carry an error marker and missing required
properties a missing marker. The report is logged and written into an HTML page.

Example:
  schemareport validate --schema openapi.yaml --endpoint /store/order --method post --status 200 responses/
  schemareport print openapi.yaml --endpoint /store/order --method post
  schemareport watch --schema schema.json payloads/
  schemareport init                    # Create a config file
  schemareport mcp serve               # Serve the tools over MCP (stdio)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodePass
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeError
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: schemareport.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: text, json for validate; yaml, json for print")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(mcpCmd)
}

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// IsVerbose returns whether verbose output is enabled.
func IsVerbose() bool {
	return verbose
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	return quiet
}

// loadConfig loads and validates the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	} else if quiet {
		cfg.Log.Level = "error"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the run logger on the command's error stream.
func newLogger(cfg *config.Config) *slog.Logger {
	return cfg.Logger(stderr())
}

// newChecker builds a checker from the configuration. Options are applied
// after the configured values.
func newChecker(cfg *config.Config, opts ...schemacheck.Option) *schemacheck.Checker {
	base := []schemacheck.Option{
		schemacheck.WithLogger(newLogger(cfg)),
		schemacheck.WithToggles(cfg.Toggles()),
		schemacheck.WithStyles(cfg.Styles),
		schemacheck.WithHighlightStyle(cfg.Report.HighlightStyle),
		schemacheck.WithResponseBodySelector(cfg.Report.ResponseBodySelector),
	}
	return schemacheck.New(append(base, opts...)...)
}

func stdout() io.Writer {
	return rootCmd.OutOrStdout()
}

func stderr() io.Writer {
	return rootCmd.ErrOrStderr()
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout(), format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(stdout(), format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Fprintf(stderr(), "Error: "+format+"\n", args...)
}

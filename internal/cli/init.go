// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/schemareport/internal/config"
)

const defaultConfigFile = "schemareport.yaml"

var (
	initForce  bool
	initReport string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new schemareport configuration file",
	Long: `Initialize a new schemareport configuration file in the current directory.

This command creates a schemareport.yaml file with the default settings
that you can customize for your project.

Example:
  schemareport init                          # Create config with defaults
  schemareport init --report report.html     # Always write the HTML report
  schemareport init --force                  # Overwrite existing config`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initReport, "report", "", "HTML report file written on failure")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := defaultConfigFile
	if cfgFile != "" {
		configFile = cfgFile
	}

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	cfg := config.Default()
	if initReport != "" {
		cfg.Report.Output = initReport
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Highlight style: %s", cfg.Report.HighlightStyle)
	printVerbose("Report: %s", cfg.Report.Output)

	return nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`# schemareport configuration file
#
# Environment overrides:
#   DISABLE_SCHEMA_VALIDATION=true  skip validation entirely
#   LOG_API_UI=false                validate and log, but never write the HTML report

`)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

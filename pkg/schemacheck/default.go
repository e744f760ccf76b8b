// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schemacheck

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/api2spec/schemareport/internal/config"
	"github.com/api2spec/schemareport/pkg/types"
)

// defaultChecker is built once per process from the configuration file in
// the working directory and the environment.
var defaultChecker = sync.OnceValue(func() *Checker {
	cfg, err := config.Load("")
	if err != nil {
		slog.Warn("failed to load schemareport config, using defaults", "error", err)
		cfg = config.Default()
	}
	return New(configOptions(cfg)...)
})

// configOptions maps loaded configuration onto checker options.
func configOptions(cfg *config.Config) []Option {
	return []Option{
		WithLogger(cfg.Logger(os.Stderr)),
		WithToggles(cfg.Toggles()),
		WithStyles(cfg.Styles),
		WithHighlightStyle(cfg.Report.HighlightStyle),
		WithResponseBodySelector(cfg.Report.ResponseBodySelector),
	}
}

// ValidateSchema validates data against schema with the process-wide
// checker. See Checker.Validate.
func ValidateSchema(ctx context.Context, fx Fixtures, data, schema any, sel *types.PathSelector, overrides *types.IssueStyles) (*types.Result, error) {
	return defaultChecker().Validate(ctx, fx, data, schema, sel, overrides)
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schemacheck validates API response payloads against schema
// documents, logs the outcome, reports failures into a browser page and
// signals them through the caller's test assertions.
package schemacheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	"github.com/api2spec/schemareport/internal/config"
	"github.com/api2spec/schemareport/pkg/jsonv"
	"github.com/api2spec/schemareport/pkg/report"
	"github.com/api2spec/schemareport/pkg/types"
	"github.com/api2spec/schemareport/pkg/validator"
)

// StepName names the step wrapping the outcome of a validation call.
const StepName = "Validate response schema"

// Engine validates data against a schema document.
type Engine interface {
	Validate(ctx context.Context, data, schema jsonv.Value, sel *types.PathSelector, style types.IssueStyles) (*types.Outcome, error)
}

// ReportRenderer renders an annotated mismatch tree.
type ReportRenderer interface {
	Render(annotated jsonv.Value, style types.IssueStyles) (string, error)
	StandalonePage(markup string) string
}

// ReportInjector places a rendered report into a page.
type ReportInjector interface {
	Inject(ctx context.Context, page report.Page, body, standalone string) (report.Action, error)
}

// StepFunc runs body as a named step of the caller's test report.
type StepFunc func(name string, body func())

// Fixtures are the per-call collaborators supplied by the caller. All fields
// are optional.
type Fixtures struct {
	// T receives assertion failures
	T assert.TestingT

	// Page receives the rendered report on failure
	Page report.Page

	// Step groups the outcome logs and assertion under a named step
	Step StepFunc
}

// Checker runs validation calls.
type Checker struct {
	engine         Engine
	renderer       ReportRenderer
	injector       ReportInjector
	toggles        types.Toggles
	styles         types.IssueStyles
	highlightStyle string
	bodySelector   string
	logger         *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithEngine sets the validation engine.
func WithEngine(engine Engine) Option {
	return func(c *Checker) {
		c.engine = engine
	}
}

// WithRenderer sets the report renderer.
func WithRenderer(renderer ReportRenderer) Option {
	return func(c *Checker) {
		c.renderer = renderer
	}
}

// WithInjector sets the page injector.
func WithInjector(injector ReportInjector) Option {
	return func(c *Checker) {
		c.injector = injector
	}
}

// WithToggles sets the process-level switches.
func WithToggles(toggles types.Toggles) Option {
	return func(c *Checker) {
		c.toggles = toggles
	}
}

// WithStyles sets process-level style overrides, applied under per-call ones.
func WithStyles(styles types.IssueStyles) Option {
	return func(c *Checker) {
		c.styles = styles
	}
}

// WithHighlightStyle sets the chroma style of the default renderer. It has
// no effect when WithRenderer is given.
func WithHighlightStyle(name string) Option {
	return func(c *Checker) {
		c.highlightStyle = name
	}
}

// WithResponseBodySelector sets the CSS selector of the report section the
// default injector replaces. It has no effect when WithInjector is given.
func WithResponseBodySelector(selector string) Option {
	return func(c *Checker) {
		c.bodySelector = selector
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Checker. Collaborators not supplied through options default
// to the jsonschema-backed validator, the chroma renderer and the standard
// injector.
func New(opts ...Option) *Checker {
	c := &Checker{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		c.engine = validator.New(validator.WithLogger(c.logger))
	}
	if c.renderer == nil {
		c.renderer = report.NewRenderer(report.NewChromaHighlighter(c.highlightStyle))
	}
	if c.injector == nil {
		c.injector = report.NewInjector(
			report.WithSelector(c.bodySelector),
			report.WithInjectorLogger(c.logger),
		)
	}
	return c
}

// EffectiveStyles layers overrides onto the checker's configured styles and
// the defaults.
func (c *Checker) EffectiveStyles(overrides *types.IssueStyles) types.IssueStyles {
	return report.MergeOnto(report.MergeStyles(&c.styles), overrides)
}

// Render renders an already annotated mismatch tree with the effective styles.
func (c *Checker) Render(annotated jsonv.Value, overrides *types.IssueStyles) (string, error) {
	return c.renderer.Render(annotated, c.EffectiveStyles(overrides))
}

// StandalonePage wraps rendered markup into a complete HTML document.
func (c *Checker) StandalonePage(markup string) string {
	return c.renderer.StandalonePage(markup)
}

// Validate checks data against schema.
//
// data may be a jsonv.Value, raw JSON bytes, an io.Reader, an *http.Response
// or any JSON-serialisable Go value. schema may additionally be YAML bytes.
// sel is required for Swagger and OpenAPI documents.
//
// When validation is disabled the data is returned without validation and
// nothing is asserted, even when it is not JSON.
//
// When the data conforms, the returned result has no errors and the
// validator's tree unchanged. Otherwise the tree is re-tagged with the
// effective markers, the failure is logged, reported into fx.Page when UI
// reporting is enabled, asserted on fx.T, and ErrNonConformance is returned
// together with the result.
func (c *Checker) Validate(ctx context.Context, fx Fixtures, data, schema any, sel *types.PathSelector, overrides *types.IssueStyles) (*types.Result, error) {
	dataDoc, err := dataValue(data)

	if c.toggles.DisableValidation {
		c.logger.Warn("⚠️ schema validation is disabled", "env", config.EnvDisableValidation)
		if err != nil {
			c.logger.Debug("data source is not JSON, returned as is", "error", err)
			return &types.Result{DataMismatches: unparsedValue(data)}, nil
		}
		return &types.Result{DataMismatches: dataDoc}, nil
	}

	if err != nil {
		c.logger.Error("cannot validate response", "error", err)
		c.fail(fx.T, err)
		return nil, err
	}

	schemaDoc, err := schemaValue(schema)
	if err != nil {
		err = fmt.Errorf("invalid schema: %w", err)
		c.logger.Error("cannot validate response", "error", err)
		c.fail(fx.T, err)
		return nil, err
	}

	effective := c.EffectiveStyles(overrides)
	out, err := c.engine.Validate(ctx, dataDoc, schemaDoc, sel, effective)
	if err != nil {
		err = fmt.Errorf("failed to validate response: %w", err)
		c.logger.Error("cannot validate response", "error", err, "selector", sel.String())
		c.fail(fx.T, err)
		return nil, err
	}

	name := stepName(sel)
	if len(out.Errors) == 0 {
		c.step(fx, name, func(log *slog.Logger) {
			log.Info("✅ response matches schema")
			if fx.T != nil {
				assert.Empty(fx.T, out.Errors)
			}
		})
		return &types.Result{DataMismatches: out.DataMismatches}, nil
	}

	result := &types.Result{
		Errors:         out.Errors,
		DataMismatches: report.Annotate(out.DataMismatches, out.Markers, effective.Markers()),
	}

	var reportErr error
	c.step(fx, name, func(log *slog.Logger) {
		log.Error("❌ response does not match schema", "errors", len(result.Errors))
		log.Error("data mismatches", "tree", "\n"+result.DataMismatches.MarshalIndent("    "))
		log.Error("error records", "records", formatRecords(result.Errors))

		if fx.Page != nil && !c.toggles.SuppressUI {
			reportErr = c.report(ctx, log, fx.Page, result.DataMismatches, effective)
		}

		if fx.T != nil {
			assert.Empty(fx.T, result.Errors, "%s: %d error(s)", ErrNonConformance, len(result.Errors))
		}
	})

	return result, errors.Join(
		fmt.Errorf("%w: %d error(s)", ErrNonConformance, len(result.Errors)),
		reportErr,
	)
}

func (c *Checker) report(ctx context.Context, log *slog.Logger, page report.Page, annotated jsonv.Value, style types.IssueStyles) error {
	markup, err := c.renderer.Render(annotated, style)
	if err != nil {
		log.Error("failed to render report", "error", err)
		return fmt.Errorf("failed to render report: %w", err)
	}

	action, err := c.injector.Inject(ctx, page, markup, c.renderer.StandalonePage(markup))
	if err != nil {
		log.Error("failed to inject report", "error", err)
		return fmt.Errorf("failed to inject report: %w", err)
	}
	log.Debug("report injected", "action", action.String())
	return nil
}

func (c *Checker) step(fx Fixtures, name string, body func(log *slog.Logger)) {
	log := c.logger.With("step", name)
	if fx.Step == nil {
		body(log)
		return
	}
	fx.Step(name, func() { body(log) })
}

func (c *Checker) fail(t assert.TestingT, err error) {
	if t != nil {
		assert.Fail(t, err.Error())
	}
}

func stepName(sel *types.PathSelector) string {
	if sel.IsZero() {
		return StepName
	}
	return StepName + ": " + sel.String()
}

func formatRecords(records []types.ErrorRecord) string {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", records)
	}
	return string(data)
}

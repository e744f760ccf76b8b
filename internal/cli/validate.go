// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/api2spec/schemareport/internal/config"
	"github.com/api2spec/schemareport/internal/openapi"
	"github.com/api2spec/schemareport/internal/scanner"
	"github.com/api2spec/schemareport/pkg/browser"
	"github.com/api2spec/schemareport/pkg/jsonv"
	"github.com/api2spec/schemareport/pkg/schemacheck"
	"github.com/api2spec/schemareport/pkg/types"
)

// validationOptions are the flags shared by validate and watch.
type validationOptions struct {
	schema     string
	endpoint   string
	method     string
	status     int
	iconError  string
	colorError string
	iconMiss   string
	colorMiss  string
	report     string
	screenshot string
	noUI       bool
	include    []string
	exclude    []string
}

// selector returns the path selector named by the flags, or nil.
func (o *validationOptions) selector() *types.PathSelector {
	sel := &types.PathSelector{Endpoint: o.endpoint, Method: o.method, Status: o.status}
	if sel.IsZero() {
		return nil
	}
	return sel
}

// styles returns the style overrides named by the flags, or nil.
func (o *validationOptions) styles() *types.IssueStyles {
	s := types.IssueStyles{
		IconPropertyError:    o.iconError,
		ColorPropertyError:   o.colorError,
		IconPropertyMissing:  o.iconMiss,
		ColorPropertyMissing: o.colorMiss,
	}
	if s.IsZero() {
		return nil
	}
	return &s
}

// payloadResult is the outcome for one payload file.
type payloadResult struct {
	Path           string              `json:"path"`
	Passed         bool                `json:"passed"`
	Skipped        bool                `json:"skipped,omitempty"`
	Errors         []types.ErrorRecord `json:"errors,omitempty"`
	DataMismatches jsonv.Value         `json:"dataMismatches"`
	Error          string              `json:"error,omitempty"`
}

var validateFlags validationOptions

var validateCmd = &cobra.Command{
	Use:   "validate [payloads...]",
	Short: "Validate response payloads against a schema",
	Long: `Validate JSON or YAML response payloads against a JSON Schema, Swagger 2.0
or OpenAPI 3.x document.

Payloads may be files, directories or glob patterns; directories are scanned
with the configured include and exclude patterns. Swagger and OpenAPI documents
need the operation: --endpoint, --method and optionally --status (200 when
omitted). A missing status falls back to its "2XX" range, then "default".

Failures are written to the HTML report (--report or report.output). An
existing report page is updated in place.

Exit codes:
  0  Every payload matches the schema
  1  At least one payload does not match
  2  Error during validation

Example:
  schemareport validate --schema order.schema.json order.json
  schemareport validate --schema openapi.yaml --endpoint /store/order --method post --status 200 responses/
  schemareport validate --schema openapi.yaml --endpoint /pets --method get 'responses/**/*.json' --report report.html
  schemareport validate --schema schema.json --icon-error 🟦 payloads/
  schemareport validate --schema schema.json -f json payloads/ | jq '.[] | select(.passed | not)'`,
	RunE: runValidate,
}

func init() {
	addValidationFlags(validateCmd, &validateFlags)
}

func addValidationFlags(cmd *cobra.Command, o *validationOptions) {
	cmd.Flags().StringVarP(&o.schema, "schema", "s", "", "schema document (JSON Schema, Swagger 2.0 or OpenAPI 3.x)")
	cmd.Flags().StringVar(&o.endpoint, "endpoint", "", "operation path template, e.g. /store/order")
	cmd.Flags().StringVar(&o.method, "method", "", "operation HTTP method, e.g. post")
	cmd.Flags().IntVar(&o.status, "status", 0, "response status code, falling back to its NXX range and \"default\" (default: 200)")
	cmd.Flags().StringVar(&o.iconError, "icon-error", "", "marker for values violating the schema")
	cmd.Flags().StringVar(&o.colorError, "color-error", "", "hex color of error markers")
	cmd.Flags().StringVar(&o.iconMiss, "icon-missing", "", "marker for missing required properties")
	cmd.Flags().StringVar(&o.colorMiss, "color-missing", "", "hex color of missing markers")
	cmd.Flags().StringVar(&o.report, "report", "", "HTML report file (default: report.output from config)")
	cmd.Flags().StringVar(&o.screenshot, "screenshot", "", "save a PNG of the report rendered in headless chromium")
	cmd.Flags().BoolVar(&o.noUI, "no-ui", false, "do not write the HTML report")
	cmd.Flags().StringSliceVar(&o.include, "include", nil, "glob patterns of payload files to include")
	cmd.Flags().StringSliceVar(&o.exclude, "exclude", nil, "glob patterns of payload files to exclude")
	_ = cmd.MarkFlagRequired("schema")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results, err := runValidation(cmd.Context(), cfg, &validateFlags, args)
	if err != nil {
		return err
	}

	if err := printResults(results); err != nil {
		return err
	}
	return resultsError(results)
}

// runValidation validates every payload named by args and updates the report.
func runValidation(ctx context.Context, cfg *config.Config, o *validationOptions, args []string) ([]payloadResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.schema == "" {
		return nil, errors.New("no schema given, use --schema")
	}

	schemaDoc, err := openapi.ReadFile(o.schema)
	if err != nil {
		return nil, err
	}

	files, err := scanPayloads(cfg, o, args)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no payload files found")
	}

	printVerbose("Validation configuration:")
	printVerbose("  Schema: %s (%s)", o.schema, openapi.DetectKind(schemaDoc))
	if sel := o.selector(); sel != nil {
		printVerbose("  Operation: %s", sel)
	}
	printVerbose("  Payloads: %d", len(files))

	toggles := cfg.Toggles()
	if o.noUI {
		toggles.SuppressUI = true
	}
	reportPath := o.report
	if reportPath == "" {
		reportPath = cfg.Report.Output
	}

	var page *browser.Document
	if reportPath != "" && !toggles.SuppressUI {
		page, err = browser.LoadDocument(reportPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load report %s: %w", reportPath, err)
		}
	}

	checker := newChecker(cfg, schemacheck.WithToggles(toggles))
	fx := schemacheck.Fixtures{}
	if page != nil {
		fx.Page = page
	}

	results := make([]payloadResult, 0, len(files))
	failed := false
	for _, file := range files {
		res := payloadResult{Path: displayPath(file.Path)}

		data, err := file.Value()
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		result, err := checker.Validate(ctx, fx, data, schemaDoc, o.selector(), o.styles())
		switch {
		case err == nil:
			res.Passed = true
			res.Skipped = toggles.DisableValidation
			res.DataMismatches = result.DataMismatches
		case errors.Is(err, schemacheck.ErrNonConformance):
			failed = true
			res.Errors = result.Errors
			res.DataMismatches = result.DataMismatches
		default:
			res.Error = err.Error()
		}
		results = append(results, res)
	}

	if page != nil && failed {
		if err := page.WriteFile(reportPath); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		printInfo("Report written to %s", reportPath)

		if o.screenshot != "" {
			if err := screenshotReport(ctx, page, o.screenshot); err != nil {
				return nil, err
			}
			printInfo("Screenshot written to %s", o.screenshot)
		}
	}

	return results, nil
}

func scanPayloads(cfg *config.Config, o *validationOptions, args []string) ([]scanner.PayloadFile, error) {
	include := cfg.Source.Include
	if len(o.include) > 0 {
		include = o.include
	}
	exclude := cfg.Source.Exclude
	if len(o.exclude) > 0 {
		exclude = o.exclude
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	s := scanner.New(scanner.Config{
		IncludePatterns: include,
		ExcludePatterns: exclude,
	})
	files, err := s.ScanPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan payloads: %w", err)
	}

	// The schema document itself is never a payload.
	schemaPath, _ := filepath.Abs(o.schema)
	kept := files[:0]
	for _, f := range files {
		if f.Path != schemaPath {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

// screenshotReport renders the report document in headless chromium.
func screenshotReport(ctx context.Context, page *browser.Document, path string) error {
	content, err := page.Content(ctx)
	if err != nil {
		return err
	}

	session, err := browser.Launch(true)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Page.SetContent(ctx, content); err != nil {
		return err
	}
	return session.Screenshot(path)
}

func printResults(results []payloadResult) error {
	if format == "json" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Fprintln(stdout(), string(data))
		return nil
	}

	for _, r := range results {
		printInfo("%s", renderResult(r))
		if verbose {
			for _, e := range r.Errors {
				printInfo("    %s", renderErrorRecord(e))
			}
		}
	}
	printInfo("%s", renderSummary(results))
	return nil
}

// resultsError returns the exit error matching the results.
func resultsError(results []payloadResult) error {
	var failed, broken int
	for _, r := range results {
		switch {
		case r.Error != "" && len(r.Errors) == 0:
			broken++
		case !r.Passed:
			failed++
		}
	}

	switch {
	case broken > 0:
		return &ExitError{Code: ExitCodeError, Err: fmt.Errorf("%d of %d payloads could not be validated", broken, len(results))}
	case failed > 0:
		return &ExitError{Code: ExitCodeFail, Err: fmt.Errorf("%d of %d payloads do not match schema", failed, len(results))}
	}
	return nil
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/api2spec/schemareport/internal/openapi"
	"github.com/api2spec/schemareport/pkg/jsonv"
	"github.com/api2spec/schemareport/pkg/schemacheck"
	"github.com/api2spec/schemareport/pkg/types"
)

// validationReport is the validate_schema result.
type validationReport struct {
	Passed         bool                `json:"passed"`
	Errors         []types.ErrorRecord `json:"errors"`
	DataMismatches jsonv.Value         `json:"dataMismatches"`
	Markup         string              `json:"markup,omitempty"`
}

// registerTools registers all schemareport MCP tools on the given server.
func registerTools(s *server.MCPServer, checker *schemacheck.Checker) {
	s.AddTool(
		mcplib.NewTool("validate_schema",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Validate a JSON response payload against a JSON Schema, Swagger 2.0 or OpenAPI 3.x document. Returns the error records, the annotated mismatch tree and, on failure, the highlighted HTML report."),
				mcplib.WithString("data", mcplib.Required(), mcplib.Description("Response payload as JSON or YAML text")),
				mcplib.WithString("schema", mcplib.Required(), mcplib.Description("Schema document as JSON or YAML text")),
				mcplib.WithString("endpoint", mcplib.Description("Path template of the operation (e.g. /store/order), required for Swagger/OpenAPI documents")),
				mcplib.WithString("method", mcplib.Description("HTTP method of the operation (e.g. post)")),
				mcplib.WithNumber("status", mcplib.Description("Response status code; omit for 200")),
			}, withStyleParams()...)...,
		),
		handleValidateSchema(checker),
	)

	s.AddTool(
		mcplib.NewTool("render_report",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Render an annotated mismatch tree as syntax-highlighted HTML"),
				mcplib.WithString("mismatches", mcplib.Required(), mcplib.Description("Annotated mismatch tree as JSON")),
				mcplib.WithBoolean("standalone", mcplib.Description("Wrap the report in a complete HTML page")),
			}, withStyleParams()...)...,
		),
		handleRenderReport(checker),
	)
}

func withStyleParams() []mcplib.ToolOption {
	return []mcplib.ToolOption{
		mcplib.WithString("icon_error", mcplib.Description("Marker for values violating the schema")),
		mcplib.WithString("color_error", mcplib.Description("Hex color of error markers")),
		mcplib.WithString("icon_missing", mcplib.Description("Marker for missing required properties")),
		mcplib.WithString("color_missing", mcplib.Description("Hex color of missing markers")),
	}
}

func handleValidateSchema(checker *schemacheck.Checker) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dataText, err := request.RequireString("data")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		schemaText, err := request.RequireString("schema")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		data, err := openapi.Parse([]byte(dataText), "")
		if err != nil {
			return errorResult(fmt.Sprintf("invalid data: %v", err)), nil
		}

		sel := &types.PathSelector{
			Endpoint: request.GetString("endpoint", ""),
			Method:   request.GetString("method", ""),
			Status:   request.GetInt("status", 0),
		}
		overrides := styleOverrides(request)

		result, err := checker.Validate(ctx, schemacheck.Fixtures{}, data, []byte(schemaText), sel, overrides)
		if err != nil && !errors.Is(err, schemacheck.ErrNonConformance) {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		out := validationReport{
			Passed:         result.Passed(),
			Errors:         result.Errors,
			DataMismatches: result.DataMismatches,
		}
		if !out.Passed {
			markup, err := checker.Render(result.DataMismatches, overrides)
			if err != nil {
				return errorResult(fmt.Sprintf("rendering failed: %v", err)), nil
			}
			out.Markup = markup
		}
		return jsonResult(out)
	}
}

func handleRenderReport(checker *schemacheck.Checker) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		text, err := request.RequireString("mismatches")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		tree, err := jsonv.Parse([]byte(text))
		if err != nil {
			return errorResult(fmt.Sprintf("invalid mismatches: %v", err)), nil
		}

		markup, err := checker.Render(tree, styleOverrides(request))
		if err != nil {
			return errorResult(fmt.Sprintf("rendering failed: %v", err)), nil
		}
		if request.GetBool("standalone", false) {
			markup = checker.StandalonePage(markup)
		}
		return textResult(markup), nil
	}
}

// styleOverrides returns the style parameters of a request, or nil when none
// are set.
func styleOverrides(request mcplib.CallToolRequest) *types.IssueStyles {
	styles := types.IssueStyles{
		IconPropertyError:    request.GetString("icon_error", ""),
		ColorPropertyError:   request.GetString("color_error", ""),
		IconPropertyMissing:  request.GetString("icon_missing", ""),
		ColorPropertyMissing: request.GetString("color_missing", ""),
	}
	if styles.IsZero() {
		return nil
	}
	return &styles
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return textResult(string(data)), nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

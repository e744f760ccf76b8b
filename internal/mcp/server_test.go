// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/schemareport/pkg/schemacheck"
)

const orderSchema = `{
  "type": "object",
  "required": ["status", "shipDate"],
  "properties": {
    "status": {"type": "string", "enum": ["placed", "approved"]},
    "shipDate": {"type": "string"}
  }
}`

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	checker := schemacheck.New(schemacheck.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s := NewServer("test", checker)
	require.NotNil(t, s)
	return s
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %q should be registered", name)

	req := mcplib.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServerHasTools(t *testing.T) {
	s := newTestServer(t)

	tools := s.ListTools()
	expectedTools := []string{"validate_schema", "render_report"}
	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func TestValidateSchema_Passes(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, "validate_schema", map[string]any{
		"data":   `{"status": "placed", "shipDate": "2026-01-01"}`,
		"schema": orderSchema,
	})
	require.False(t, result.IsError, resultText(t, result))

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, true, out["passed"])
	assert.Nil(t, out["errors"])
	assert.NotContains(t, out, "markup")
}

func TestValidateSchema_FailsWithOverrides(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, "validate_schema", map[string]any{
		"data":         "status: placed\n",
		"schema":       orderSchema,
		"icon_missing": "🟥",
	})
	require.False(t, result.IsError, resultText(t, result))

	var out struct {
		Passed         bool             `json:"passed"`
		Errors         []map[string]any `json:"errors"`
		DataMismatches map[string]any   `json:"dataMismatches"`
		Markup         string           `json:"markup"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))

	assert.False(t, out.Passed)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "required", out.Errors[0]["keyword"])
	assert.Equal(t, "🟥 Missing property 'shipDate'", out.DataMismatches["shipDate"])
	assert.Contains(t, out.Markup, `color: #c10000;">&#34;🟥`)
}

func TestValidateSchema_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing data", map[string]any{"schema": orderSchema}, "data"},
		{"invalid data", map[string]any{"data": "key: [unclosed", "schema": orderSchema}, "invalid data"},
		{"selector required", map[string]any{"data": `{}`, "schema": `{"openapi": "3.0.3", "paths": {}}`}, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, newTestServer(t), "validate_schema", tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}

func TestRenderReport(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, "render_report", map[string]any{
		"mismatches": `{"status": "🟦 \"shipped\" value must be one of 'placed', 'approved'"}`,
		"icon_error": "🟦",
	})
	require.False(t, result.IsError, resultText(t, result))

	markup := resultText(t, result)
	assert.True(t, strings.HasPrefix(markup, `<pre class="chroma">`))
	assert.Contains(t, markup, `color: #ee930a;">&#34;🟦`)
}

func TestRenderReport_Standalone(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, "render_report", map[string]any{
		"mismatches": `{"a": 1}`,
		"standalone": true,
	})
	require.False(t, result.IsError)

	page := resultText(t, result)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `data-report-section="response-body"`)
}

func TestRenderReport_InvalidMismatches(t *testing.T) {
	result := callTool(t, newTestServer(t), "render_report", map[string]any{"mismatches": "{"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid mismatches")
}

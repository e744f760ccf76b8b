// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package mcp exposes schema validation and report rendering as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/api2spec/schemareport/pkg/schemacheck"
)

// NewServer creates an MCP server with the schemareport tools registered.
func NewServer(version string, checker *schemacheck.Checker) *server.MCPServer {
	s := server.NewMCPServer(
		"schemareport",
		version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, checker)

	return s
}

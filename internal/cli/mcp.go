// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/api2spec/schemareport/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the schemareport MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the schemareport MCP server (stdio)",
	Long: `Start the schemareport MCP server using stdio transport. This lets AI
assistants validate payloads against schemas and render mismatch reports.

Logs are written to stderr; stdout carries the protocol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		checker := newChecker(cfg)
		return server.ServeStdio(mcpadapter.NewServer(Version, checker))
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}

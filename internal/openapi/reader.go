// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi reads schema documents and locates response schemas in
// Swagger 2.0 and OpenAPI 3.x documents.
package openapi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/api2spec/schemareport/pkg/jsonv"
)

// ReadFile reads a schema document or payload from a file.
// The format is inferred from the file extension.
func ReadFile(path string) (jsonv.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes data as JSON or YAML according to ext (".json", ".yaml",
// ".yml"). Any other extension tries JSON first, then YAML.
func Parse(data []byte, ext string) (jsonv.Value, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return jsonv.Parse(data)
	case ".yaml", ".yml":
		return jsonv.ParseYAML(data)
	default:
		doc, err := jsonv.Parse(data)
		if err == nil {
			return doc, nil
		}
		doc, yamlErr := jsonv.ParseYAML(data)
		if yamlErr != nil {
			return jsonv.Value{}, fmt.Errorf("failed to parse as JSON or YAML: %w", yamlErr)
		}
		return doc, nil
	}
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers response payload files on disk.
package scanner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/api2spec/schemareport/internal/openapi"
	"github.com/api2spec/schemareport/pkg/jsonv"
)

// PayloadFile is a discovered response payload.
type PayloadFile struct {
	// Path is the absolute path to the file
	Path string

	// Format is the payload format ("json" or "yaml")
	Format string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// Value decodes the payload.
func (f PayloadFile) Value() (jsonv.Value, error) {
	return openapi.Parse(f.Content, filepath.Ext(f.Path))
}

// formatExtensions maps file extensions to payload formats.
var formatExtensions = map[string]string{
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
}

// DetectFormat detects the payload format from a file path.
func DetectFormat(path string) string {
	return formatExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions returns the payload file extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formatExtensions))
	for ext := range formatExtensions {
		exts = append(exts, ext)
	}
	return exts
}

// IsSupportedFile reports whether path has a payload extension.
func IsSupportedFile(path string) bool {
	return DetectFormat(path) != ""
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/schemareport/pkg/jsonv"
)

// Writer handles writing schema documents and fragments to various outputs.
type Writer struct {
	// Indent specifies the indentation for JSON output (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// WriteYAML writes a value as YAML to the given writer, keeping member order.
func (w *Writer) WriteYAML(doc jsonv.Value, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(ToYAMLNode(doc)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// WriteJSON writes a value as JSON to the given writer, keeping member order.
func (w *Writer) WriteJSON(doc jsonv.Value, out io.Writer) error {
	if _, err := io.WriteString(out, doc.MarshalIndent(strings.Repeat(" ", w.Indent))+"\n"); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// WriteFile writes a value to a file.
// The format is determined by the format parameter ("yaml" or "json").
// If format is empty, it is inferred from the file extension.
func (w *Writer) WriteFile(doc jsonv.Value, path string, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(doc, file, format)
}

// Write writes a value in the named format ("yaml" or "json").
func (w *Writer) Write(doc jsonv.Value, out io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return w.WriteYAML(doc, out)
	case "json":
		return w.WriteJSON(doc, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// ToYAML returns the YAML representation of a value as a string.
func (w *Writer) ToYAML(doc jsonv.Value) (string, error) {
	var buf strings.Builder
	if err := w.WriteYAML(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToJSON returns the JSON representation of a value as a string.
func (w *Writer) ToJSON(doc jsonv.Value) (string, error) {
	var buf strings.Builder
	if err := w.WriteJSON(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatFromPath infers "yaml" or "json" from a file extension, defaulting
// to YAML.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// ToYAMLNode converts a value into a yaml.v3 node tree. Mapping order follows
// the member order of the value.
func ToYAMLNode(v jsonv.Value) *yaml.Node {
	switch v.Kind() {
	case jsonv.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				ToYAMLNode(m.Value),
			)
		}
		return n
	case jsonv.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, ToYAMLNode(item))
		}
		return n
	case jsonv.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case jsonv.Number:
		tag := "!!int"
		if strings.ContainsAny(v.NumberLiteral(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.NumberLiteral()}
	case jsonv.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v.Bool())}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderSchema = `{
  "type": "object",
  "required": ["id", "shipDate"],
  "properties": {
    "id": {"type": "integer"},
    "shipDate": {"type": "string"}
  }
}`

const petstore = `swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
paths:
  /store/order:
    post:
      responses:
        "200":
          description: successful operation
          schema:
            $ref: "#/definitions/Order"
definitions:
  Order:
    type: object
    properties:
      id:
        type: integer
      shipDate:
        type: string
`

// executeCommand runs a command and returns output and error.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of the command tree to its default, since
// the flags are bound to package-level variables.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(interface{ Replace([]string) error }); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeFixtures lays out a schema and payloads in a fresh working directory.
func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestRootCommand_Help(t *testing.T) {
	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "schemareport")
	assert.Contains(t, output, "Available Commands")
	for _, name := range []string{"validate", "watch", "print", "init", "mcp", "version"} {
		assert.Contains(t, output, name)
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		expected string
	}{
		{"config flag short", "-c", "config file"},
		{"config flag long", "--config", "config file"},
		{"output flag long", "--output", "output file path"},
		{"format flag long", "--format", "output format"},
		{"verbose flag", "--verbose", "enable verbose output"},
		{"quiet flag", "--quiet", "suppress non-error output"},
	}

	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, output, tt.flag)
			assert.Contains(t, output, tt.expected)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "version")
	require.NoError(t, err)

	assert.Contains(t, output, "schemareport dev")
	assert.Contains(t, output, "Highlighter: chroma")
	assert.Contains(t, output, "Go Version:")
	assert.Equal(t, "schemareport dev (commit: unknown, built: unknown)", GetVersionInfo())
}

func TestValidateCommand_Pass(t *testing.T) {
	writeFixtures(t, map[string]string{
		"schema.json":         orderSchema,
		"payloads/order.json": `{"id": 1, "shipDate": "2024-01-01"}`,
	})

	output, err := executeCommand(rootCmd, "validate", "--schema", "schema.json", "payloads")
	require.NoError(t, err)

	assert.Contains(t, output, "PASS")
	assert.Contains(t, output, "1 passed")
	assert.NoFileExists(t, "report.html")
}

func TestValidateCommand_FailWritesReport(t *testing.T) {
	writeFixtures(t, map[string]string{
		"schema.json":       orderSchema,
		"payloads/ok.json":  `{"id": 1, "shipDate": "2024-01-01"}`,
		"payloads/bad.json": `{"id": "one"}`,
	})

	output, err := executeCommand(rootCmd, "validate", "--schema", "schema.json", "--report", "out/report.html", "payloads")
	require.Error(t, err)
	assert.Equal(t, ExitCodeFail, ExitCode(err))

	assert.Contains(t, output, "FAIL")
	assert.Contains(t, output, "PASS")
	assert.Contains(t, output, "Report written to out/report.html")

	report, readErr := os.ReadFile(filepath.Join("out", "report.html"))
	require.NoError(t, readErr)
	assert.Contains(t, string(report), "font-weight: bold")
}

func TestValidateCommand_NoUISkipsReport(t *testing.T) {
	writeFixtures(t, map[string]string{
		"schema.json":       orderSchema,
		"payloads/bad.json": `{"id": "one"}`,
	})

	_, err := executeCommand(rootCmd, "validate", "--schema", "schema.json", "--report", "report.html", "--no-ui", "payloads")
	assert.Equal(t, ExitCodeFail, ExitCode(err))
	assert.NoFileExists(t, "report.html")
}

func TestValidateCommand_JSONFormat(t *testing.T) {
	writeFixtures(t, map[string]string{
		"schema.json":       orderSchema,
		"payloads/bad.json": `{"id": "one"}`,
	})

	output, err := executeCommand(rootCmd, "validate", "--schema", "schema.json", "--format", "json", "--quiet", "payloads")
	assert.Equal(t, ExitCodeFail, ExitCode(err))

	// Log lines share the buffer; the results array starts on its own line.
	start := strings.Index(output, "[\n  {")
	require.GreaterOrEqual(t, start, 0)

	var results []payloadResult
	require.NoError(t, json.Unmarshal([]byte(output[start:]), &results))
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.NotEmpty(t, results[0].Errors)
}

func TestValidateCommand_DisabledByEnvironment(t *testing.T) {
	writeFixtures(t, map[string]string{
		"schema.json":       orderSchema,
		"payloads/bad.json": `{"id": "one"}`,
	})
	t.Setenv("DISABLE_SCHEMA_VALIDATION", "true")

	output, err := executeCommand(rootCmd, "validate", "--schema", "schema.json", "payloads")
	require.NoError(t, err)
	assert.Contains(t, output, "SKIP")
}

func TestValidateCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		args     []string
		wantCode int
	}{
		{
			name:     "missing schema flag",
			files:    map[string]string{"a.json": `{}`},
			args:     []string{"validate", "a.json"},
			wantCode: ExitCodeError,
		},
		{
			name:     "schema file not found",
			files:    map[string]string{"a.json": `{}`},
			args:     []string{"validate", "--schema", "nope.json", "a.json"},
			wantCode: ExitCodeError,
		},
		{
			name:     "malformed payload",
			files:    map[string]string{"schema.json": orderSchema, "payloads/broken.json": `{"id":`},
			args:     []string{"validate", "--schema", "schema.json", "payloads"},
			wantCode: ExitCodeError,
		},
		{
			name:     "no payloads",
			files:    map[string]string{"schema.json": orderSchema},
			args:     []string{"validate", "--schema", "schema.json"},
			wantCode: ExitCodeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFixtures(t, tt.files)
			_, err := executeCommand(rootCmd, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
		})
	}
}

func TestPrintCommand_FollowsReference(t *testing.T) {
	writeFixtures(t, map[string]string{"petstore.yaml": petstore})

	output, err := executeCommand(rootCmd, "print", "petstore.yaml", "--endpoint", "/store/order", "--method", "post", "--status", "200", "--format", "json")
	require.NoError(t, err)

	assert.Contains(t, output, `"shipDate"`)
	assert.NotContains(t, output, "$ref")
}

func TestPrintCommand_WritesFile(t *testing.T) {
	writeFixtures(t, map[string]string{"petstore.yaml": petstore})

	_, err := executeCommand(rootCmd, "print", "petstore.yaml", "--endpoint", "/store/order", "--method", "post", "-o", "order.yaml")
	require.NoError(t, err)

	data, err := os.ReadFile("order.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "shipDate")
}

func TestPrintCommand_UnknownOperation(t *testing.T) {
	writeFixtures(t, map[string]string{"petstore.yaml": petstore})

	_, err := executeCommand(rootCmd, "print", "petstore.yaml", "--endpoint", "/pets", "--method", "get")
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitCodePass},
		{"plain error", errors.New("boom"), ExitCodeError},
		{"exit error", &ExitError{Code: ExitCodeFail, Err: errors.New("mismatch")}, ExitCodeFail},
		{"wrapped exit error", errors.Join(errors.New("ctx"), &ExitError{Code: ExitCodeFail, Err: errors.New("x")}), ExitCodeFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestResultsError(t *testing.T) {
	assert.NoError(t, resultsError([]payloadResult{{Passed: true}}))

	err := resultsError([]payloadResult{{Passed: true}, {Errors: nil, Error: "bad json"}})
	assert.Equal(t, ExitCodeError, ExitCode(err))

	err = resultsError([]payloadResult{{Passed: false}})
	assert.Equal(t, ExitCodeFail, ExitCode(err))
	assert.EqualError(t, err, "1 of 1 payloads do not match schema")
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 error", pluralize(1, "error"))
	assert.Equal(t, "0 errors", pluralize(0, "error"))
	assert.Equal(t, "3 payloads", pluralize(3, "payload"))
}

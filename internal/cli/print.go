// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/schemareport/internal/openapi"
	"github.com/api2spec/schemareport/pkg/types"
)

var (
	printEndpoint string
	printMethod   string
	printStatus   int
)

var printCmd = &cobra.Command{
	Use:   "print <schema>",
	Short: "Print the response schema selected from a document",
	Long: `Print the schema payloads are validated against.

For Swagger 2.0 and OpenAPI 3.x documents the response schema of the
operation named by --endpoint, --method and --status is printed. Other
documents are printed whole. A top-level local reference is followed; nested
references are left as they are.

Example:
  schemareport print order.schema.json
  schemareport print openapi.yaml --endpoint /store/order --method post --status 200
  schemareport print openapi.yaml --endpoint /pets --method get -f json
  schemareport print openapi.yaml --endpoint /pets --method get -o pets.schema.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printEndpoint, "endpoint", "", "operation path template, e.g. /store/order")
	printCmd.Flags().StringVar(&printMethod, "method", "", "operation HTTP method, e.g. post")
	printCmd.Flags().IntVar(&printStatus, "status", 0, "response status code, falling back to its NXX range and \"default\" (default: 200)")
}

func runPrint(cmd *cobra.Command, args []string) error {
	doc, err := openapi.ReadFile(args[0])
	if err != nil {
		return err
	}

	sel := &types.PathSelector{Endpoint: printEndpoint, Method: printMethod, Status: printStatus}
	loc, err := openapi.Locate(doc, sel)
	if err != nil {
		return fmt.Errorf("failed to locate response schema: %w", err)
	}

	pointer, err := openapi.ResolveRef(doc, loc.Pointer)
	if err != nil {
		return fmt.Errorf("failed to resolve response schema: %w", err)
	}
	schema, _ := doc.At(pointer)

	printVerbose("Document: %s", loc.Kind)
	printVerbose("Schema: %s", loc.Fragment())

	writer := openapi.NewWriter()
	if output != "" {
		if err := writer.WriteFile(schema, output, format); err != nil {
			return err
		}
		printInfo("Schema written to %s", output)
		return nil
	}

	outputFormat := format
	if outputFormat == "" {
		outputFormat = "yaml"
	}
	return writer.Write(schema, stdout(), outputFormat)
}

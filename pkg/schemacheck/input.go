// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schemacheck

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/api2spec/schemareport/internal/openapi"
	"github.com/api2spec/schemareport/pkg/jsonv"
)

// dataValue converts the supported data sources into a JSON value.
// An *http.Response body is read in full and replaced with a fresh reader so
// the caller can still consume it.
func dataValue(data any) (jsonv.Value, error) {
	switch d := data.(type) {
	case jsonv.Value:
		return d, nil
	case *jsonv.Value:
		if d == nil {
			return jsonv.Value{}, &MisuseError{Reason: "nil value"}
		}
		return *d, nil
	case []byte:
		v, err := jsonv.Parse(d)
		if err != nil {
			return jsonv.Value{}, &MisuseError{Reason: "body is not JSON", Err: err}
		}
		return v, nil
	case *http.Response:
		return responseValue(d)
	case io.Reader:
		body, err := io.ReadAll(d)
		if err != nil {
			return jsonv.Value{}, &MisuseError{Reason: "failed to read body", Err: err}
		}
		return dataValue(body)
	}

	v, err := jsonv.FromAny(data)
	if err != nil {
		return jsonv.Value{}, &MisuseError{Reason: "value is not JSON-serialisable", Err: err}
	}
	return v, nil
}

// unparsedValue keeps a data source that is not JSON as a string value when
// its text is still available. Consumed readers and unusable values become
// null.
func unparsedValue(data any) jsonv.Value {
	switch d := data.(type) {
	case []byte:
		return jsonv.StringValue(string(d))
	case *http.Response:
		if d == nil || d.Body == nil || d.Body == http.NoBody {
			return jsonv.NullValue()
		}
		body, err := io.ReadAll(d.Body)
		_ = d.Body.Close()
		d.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return jsonv.NullValue()
		}
		return jsonv.StringValue(string(body))
	}
	return jsonv.NullValue()
}

func responseValue(resp *http.Response) (jsonv.Value, error) {
	if resp == nil {
		return jsonv.Value{}, &MisuseError{Reason: "nil response"}
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return jsonv.Value{}, &MisuseError{Reason: "response has no body"}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return jsonv.Value{}, &MisuseError{Reason: "failed to read response body", Err: err}
	}

	v, err := jsonv.Parse(body)
	if err != nil {
		return jsonv.Value{}, &MisuseError{Reason: "response body is not JSON", Err: err}
	}
	return v, nil
}

// schemaValue converts a schema document. Raw documents may be JSON or YAML.
func schemaValue(schema any) (jsonv.Value, error) {
	switch s := schema.(type) {
	case jsonv.Value:
		return s, nil
	case []byte:
		return openapi.Parse(s, "")
	case io.Reader:
		raw, err := io.ReadAll(s)
		if err != nil {
			return jsonv.Value{}, fmt.Errorf("failed to read schema: %w", err)
		}
		return openapi.Parse(raw, "")
	}
	return jsonv.FromAny(schema)
}

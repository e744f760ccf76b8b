// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schemacheck

import (
	"errors"
	"fmt"
)

// ErrNonConformance is returned, wrapped, whenever the data does not satisfy
// the schema. The accompanying result is still returned.
var ErrNonConformance = errors.New("response does not match schema")

// MisuseError reports a data source that is not shaped like an API response.
type MisuseError struct {
	Reason string
	Err    error
}

func (e *MisuseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid data source: %s: %v", e.Reason, e.Err)
	}
	return "invalid data source: " + e.Reason
}

func (e *MisuseError) Unwrap() error {
	return e.Err
}

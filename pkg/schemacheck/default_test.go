// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schemacheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/schemareport/internal/config"
	"github.com/api2spec/schemareport/pkg/report"
	"github.com/api2spec/schemareport/pkg/types"
)

func TestConfigOptions(t *testing.T) {
	cfg := config.Default()
	cfg.DisableSchemaValidation = true
	cfg.LogAPIUI = false
	cfg.Styles = types.IssueStyles{ColorPropertyError: "#123456"}
	cfg.Report.HighlightStyle = "monokai"
	cfg.Report.ResponseBodySelector = "#body"

	c := New(configOptions(cfg)...)

	assert.Equal(t, types.Toggles{DisableValidation: true, SuppressUI: true}, c.toggles)
	assert.Equal(t, "#123456", c.EffectiveStyles(nil).ColorPropertyError)
	assert.Equal(t, "monokai", c.highlightStyle)

	injector, ok := c.injector.(*report.Injector)
	require.True(t, ok)
	assert.Equal(t, "#body, "+report.ResponseBodySelector, injector.Selector())
}

func TestNew_DefaultInjectorSelector(t *testing.T) {
	c := New()

	injector, ok := c.injector.(*report.Injector)
	require.True(t, ok)
	assert.Equal(t, report.ResponseBodySelector, injector.Selector())
}

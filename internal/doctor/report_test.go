package doctor

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *DoctorReport {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "ok", result: &CheckResult{
		Name: "book-toml", Category: "book", Status: SeverityPass, Message: "book.toml is valid",
	}})
	r.AddCheck(&stubCheck{name: "warn", result: &CheckResult{
		Name: "preprocessor-registered", Category: "book", Status: SeverityWarning,
		Message: "not declared", Fixable: true, FixHint: "run doctor --fix",
	}})
	return r.Run()
}

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestReporter_Text(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText, false).Report(sampleReport(), nil))

	out := buf.String()
	assert.Contains(t, out, "⚠ [book] preprocessor-registered: not declared\n")
	assert.Contains(t, out, "  hint: run doctor --fix\n")
	assert.NotContains(t, out, "book-toml")
	assert.Contains(t, out, "Summary: 1 passed, 0 info, 1 warnings, 0 errors\n")
}

func TestReporter_TextVerbose(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText, true).Report(sampleReport(), nil))

	assert.Contains(t, buf.String(), "✓ [book] book-toml: book.toml is valid\n")
}

func TestReporter_TextFixes(t *testing.T) {
	noColor(t)

	fixes := []FixResult{
		{Path: "book.toml", Fixed: true, Description: "added [preprocessor.frontmatter-strip]"},
		{Path: "other.toml", Description: "permission denied"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText, false).Report(sampleReport(), fixes))

	out := buf.String()
	assert.Contains(t, out, "✓ fixed book.toml: added [preprocessor.frontmatter-strip]\n")
	assert.Contains(t, out, "✗ not fixed other.toml: permission denied\n")
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	fixes := []FixResult{{Path: "book.toml", Fixed: true, Description: "added"}}
	require.NoError(t, NewReporter(&buf, FormatJSON, false).Report(sampleReport(), fixes))

	var decoded struct {
		Results []struct {
			Name   string   `json:"name"`
			Status Severity `json:"status"`
		} `json:"results"`
		Summary Summary     `json:"summary"`
		Fixes   []FixResult `json:"fixes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Results, 2)
	assert.Equal(t, SeverityWarning, decoded.Results[1].Status)
	assert.Equal(t, Summary{Passed: 1, Warnings: 1}, decoded.Summary)
	require.Len(t, decoded.Fixes, 1)
	assert.Equal(t, "book.toml", decoded.Fixes[0].Path)

	assert.Contains(t, buf.String(), `"status": "warning"`)
}

func TestReporter_NilReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText, false).Report(nil, nil))
	assert.Empty(t, buf.String())
}

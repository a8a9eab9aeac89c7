package doctor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
)

// Format specifies the output format for doctor reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes doctor reports.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter. In text format only warnings and
// errors are listed unless verbose is set.
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,
	}
}

// jsonReport is the JSON shape of a report with its fix outcomes.
type jsonReport struct {
	*DoctorReport
	Fixes []FixResult `json:"fixes,omitempty"`
}

// Report writes the report followed by any fix results.
func (r *Reporter) Report(report *DoctorReport, fixes []FixResult) error {
	if report == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(jsonReport{DoctorReport: report, Fixes: fixes}), "encoding JSON report")
	default:
		r.reportText(report, fixes)
		return nil
	}
}

func (r *Reporter) reportText(report *DoctorReport, fixes []FixResult) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == SeverityError || result.Status == SeverityWarning
		if !r.verbose && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(r.out, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(r.out, "  %s %s\n", color.New(color.FgHiBlack).Sprint("hint:"), result.FixHint)
		}
	}

	for _, fix := range fixes {
		hasOutput = true
		if fix.Fixed {
			fmt.Fprintf(r.out, "%s fixed %s: %s\n", color.GreenString("✓"), fix.Path, fix.Description)
		} else {
			fmt.Fprintf(r.out, "%s not fixed %s: %s\n", color.RedString("✗"), fix.Path, fix.Description)
		}
	}

	if hasOutput || r.verbose {
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Summary: %d passed, %d info, %s, %s\n",
		report.Summary.Passed, report.Summary.Info,
		colorCount(report.Summary.Warnings, "warnings", color.FgYellow),
		colorCount(report.Summary.Errors, "errors", color.FgRed))
}

func colorCount(n int, label string, attr color.Attribute) string {
	text := fmt.Sprintf("%d %s", n, label)
	if n == 0 {
		return text
	}
	return color.New(attr).Sprint(text)
}

func statusIcon(s Severity) string {
	switch s {
	case SeverityPass:
		return color.GreenString("✓")
	case SeverityInfo:
		return color.CyanString("ℹ")
	case SeverityWarning:
		return color.YellowString("⚠")
	case SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

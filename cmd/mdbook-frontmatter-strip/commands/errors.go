package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
)

// ReportError prints err to w and returns the process exit code for it.
// Errors without an explicit code are usage errors.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return errors.ExitSuccess
	}

	code := errors.ExitUser
	suggestion := ""

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Silent() {
			return code
		}
		suggestion = exitErr.Suggestion
	}

	fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
	if suggestion != "" {
		fmt.Fprintln(w, suggestion)
	}

	return code
}

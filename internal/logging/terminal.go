package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether v is backed by a terminal. It accepts readers
// and writers alike; anything without an Fd method is not a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colour should be written to w.
// NO_COLOR (https://no-color.org) and TERM=dumb switch it off.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(os.LookupEnv, IsTerminal(w))
}

func colorAllowed(lookup func(string) (string, bool), terminal bool) bool {
	if _, set := lookup("NO_COLOR"); set {
		return false
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	return terminal
}

// Package editor launches the user's preferred text editor.
package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
)

// Streams are the terminal streams handed to the editor process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open launches the user's preferred editor for the given path and waits
// for it to exit. Uses $EDITOR, falling back to $VISUAL, then nano, then vi.
func Open(path string, streams Streams) error {
	editorCmd := detectEditor()

	fmt.Fprintf(streams.Out, "Location: %s\n", path)

	cmd := exec.Command(editorCmd, path)
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", editorCmd)
	}

	return nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}

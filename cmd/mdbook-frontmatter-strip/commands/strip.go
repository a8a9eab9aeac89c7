package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/logging"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/fileutil"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/frontmatter"
)

var (
	stripWrite       bool
	stripFrontmatter bool
)

func init() {
	stripCmd.Flags().BoolVarP(&stripWrite, "write", "w", false,
		"rewrite files in place instead of printing")
	stripCmd.Flags().BoolVar(&stripFrontmatter, "frontmatter", false,
		"print the frontmatter block instead of the body")
	stripCmd.MarkFlagsMutuallyExclusive("write", "frontmatter")
	rootCmd.AddCommand(stripCmd)
}

var stripCmd = &cobra.Command{
	Use:   "strip [file...]",
	Short: "Strip frontmatter from Markdown files",
	Long: `Strip a leading frontmatter block from Markdown files, using the same
rules the preprocessor applies to chapters.

With no files, standard input is read. The body is written to stdout unless
--write is given, in which case each file that carries frontmatter is
rewritten atomically. Files without a complete block are left alone.`,
	Example: `  # Print a chapter without its frontmatter
  mdbook-frontmatter-strip strip src/intro.md

  # Print only the frontmatter
  mdbook-frontmatter-strip strip --frontmatter src/intro.md

  # Rewrite every chapter in place
  mdbook-frontmatter-strip strip -w src/*.md

See Also: mdbook-frontmatter-strip doctor`,
	RunE: runStrip,
}

func runStrip(cmd *cobra.Command, args []string) error {
	if stripWrite && len(args) == 0 {
		return errors.NewUserError(errors.New("--write requires at least one file"), "")
	}

	out := cmd.OutOrStdout()

	if len(args) == 0 {
		data, err := fileutil.ReadAllWithLimit(cmd.InOrStdin())
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "reading stdin"), "")
		}
		return printStripped(out, string(data))
	}

	logger := logging.FromContext(cmd.Context())
	for _, path := range args {
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, fileutil.ErrFileTooLarge) {
				return errors.NewUserError(errors.Wrapf(err, "reading %s", path), "")
			}
			return errors.NewSystemError(errors.Wrapf(err, "reading %s", path), "")
		}
		content := string(data)

		if !stripWrite {
			if err := printStripped(out, content); err != nil {
				return err
			}
			continue
		}

		if _, _, ok := frontmatter.Split(content); !ok {
			logger.Debug("no frontmatter, skipping", "file", path)
			continue
		}
		if err := fileutil.RewriteFile(path, []byte(withNewline(frontmatter.Strip(content)))); err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "rewriting %s", path), "")
		}
		logger.Info("stripped frontmatter", "file", path)
	}

	return nil
}

// printStripped writes either the body or the frontmatter of content.
func printStripped(w io.Writer, content string) error {
	text := frontmatter.Strip(content)
	if stripFrontmatter {
		_, matter, _ := frontmatter.Split(content)
		text = matter
	}
	if _, err := fmt.Fprint(w, withNewline(text)); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing output"), "")
	}
	return nil
}

// withNewline terminates non-empty text with a single newline.
func withNewline(s string) string {
	if s == "" {
		return s
	}
	return s + "\n"
}

package doctor

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/paths"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/fileutil"
)

// BookConfig is the part of book.toml the checks read.
type BookConfig struct {
	Book struct {
		Title string `toml:"title"`
		Src   string `toml:"src"`
	} `toml:"book"`

	Preprocessor map[string]PreprocessorTable `toml:"preprocessor"`

	// Output tables are keyed by renderer name. Their contents belong to
	// the renderer, so only the keys are inspected.
	Output map[string]map[string]any `toml:"output"`
}

// PreprocessorTable is a [preprocessor.<name>] table.
type PreprocessorTable struct {
	Command   string   `toml:"command"`
	Renderers []string `toml:"renderers"`
	Before    []string `toml:"before"`
	After     []string `toml:"after"`
}

// BookDir is an mdBook project directory with its book.toml loaded once
// and shared between checks.
type BookDir struct {
	// Root is the directory containing book.toml.
	Root string

	// Config is nil when book.toml is missing or invalid; Err says why.
	Config *BookConfig

	// Err is the load failure, if any.
	Err error

	// Missing reports that book.toml does not exist.
	Missing bool

	raw []byte
}

// LoadBookDir reads and parses root/book.toml. Failures are recorded on the
// returned BookDir rather than returned, so every check can report them in
// its own terms.
func LoadBookDir(root string) *BookDir {
	dir := &BookDir{Root: root}

	data, err := fileutil.ReadFileWithLimit(dir.TomlPath())
	if err != nil {
		dir.Missing = errors.Is(err, os.ErrNotExist)
		dir.Err = err
		return dir
	}
	dir.raw = data

	var cfg BookConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		dir.Err = err
		return dir
	}
	dir.Config = &cfg
	return dir
}

// TomlPath returns the path of book.toml.
func (d *BookDir) TomlPath() string {
	return paths.BookToml(d.Root)
}

// SourceDir returns the chapter source directory, honouring [book] src.
func (d *BookDir) SourceDir() string {
	src := ""
	if d.Config != nil {
		src = d.Config.Book.Src
	}
	return paths.SourceDir(d.Root, src)
}

// Preprocessor returns the [preprocessor.<name>] table, if declared.
func (d *BookDir) Preprocessor(name string) (PreprocessorTable, bool) {
	if d.Config == nil {
		return PreprocessorTable{}, false
	}
	table, ok := d.Config.Preprocessor[name]
	return table, ok
}

// formatTOMLError formats TOML parsing errors with position info.
func formatTOMLError(err error) string {
	// go-toml/v2 DecodeError includes line/column via Position()
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s",
			row, col, decodeErr.Error())
	}

	return fmt.Sprintf("TOML error: %v", err)
}

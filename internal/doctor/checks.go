package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/paths"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/preprocessor"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/fileutil"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/frontmatter"
)

// mdBook renders with html when book.toml declares no [output] table.
const defaultRenderer = "html"

// RendererPolicy decides which renderers the preprocessor runs for.
type RendererPolicy interface {
	SupportsRenderer(renderer string) bool
}

// skipped builds the result for a check that cannot run without book.toml.
func skipped(c Check) *CheckResult {
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
		Message:  "skipped: book.toml unavailable",
	}
}

// BookTomlCheck verifies that book.toml exists and parses.
type BookTomlCheck struct {
	dir *BookDir
}

var _ Check = (*BookTomlCheck)(nil)

// NewBookTomlCheck creates a book.toml check.
func NewBookTomlCheck(dir *BookDir) *BookTomlCheck {
	return &BookTomlCheck{dir: dir}
}

// Name returns the unique identifier for this check.
func (c *BookTomlCheck) Name() string {
	return "book-toml"
}

// Category returns the grouping for this check.
func (c *BookTomlCheck) Category() string {
	return "book"
}

// Run executes the check.
func (c *BookTomlCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.dir.TomlPath()},
	}

	switch {
	case c.dir.Missing:
		result.Status = SeverityError
		result.Message = "book.toml not found"
		result.FixHint = "run doctor from the book root or pass the book directory as an argument"
	case c.dir.Err != nil:
		result.Status = SeverityError
		result.Message = formatTOMLError(c.dir.Err)
		if errors.Is(c.dir.Err, fileutil.ErrFileTooLarge) {
			result.Message = c.dir.Err.Error()
		}
	default:
		result.Status = SeverityPass
		result.Message = "book.toml is valid"
		if title := c.dir.Config.Book.Title; title != "" {
			result.Details["title"] = title
		}
	}

	return result
}

// PreprocessorRegisteredCheck verifies that book.toml declares
// [preprocessor.frontmatter-strip]. It can append the table when missing.
type PreprocessorRegisteredCheck struct {
	dir     *BookDir
	missing bool
}

var (
	_ Check = (*PreprocessorRegisteredCheck)(nil)
	_ Fixer = (*PreprocessorRegisteredCheck)(nil)
)

// NewPreprocessorRegisteredCheck creates a registration check.
func NewPreprocessorRegisteredCheck(dir *BookDir) *PreprocessorRegisteredCheck {
	return &PreprocessorRegisteredCheck{dir: dir}
}

// Name returns the unique identifier for this check.
func (c *PreprocessorRegisteredCheck) Name() string {
	return "preprocessor-registered"
}

// Category returns the grouping for this check.
func (c *PreprocessorRegisteredCheck) Category() string {
	return "book"
}

// Run executes the check.
func (c *PreprocessorRegisteredCheck) Run() *CheckResult {
	c.missing = false
	if c.dir.Config == nil {
		return skipped(c)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	table, ok := c.dir.Preprocessor(preprocessor.Name)
	if !ok {
		c.missing = true
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("book.toml does not declare %s; chapters keep their frontmatter", tableHeader())
		result.Fixable = true
		result.FixHint = fmt.Sprintf("add %s to book.toml or run doctor --fix", tableHeader())
		return result
	}

	result.Details = map[string]any{"command": commandOf(table)}
	if table.Command != "" && !strings.Contains(table.Command, paths.AppName) {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%s runs a custom command: %s", tableHeader(), table.Command)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s is declared", tableHeader())
	return result
}

// CanFix reports whether Run found the table missing.
func (c *PreprocessorRegisteredCheck) CanFix() bool {
	return c.missing
}

// Fix appends an empty [preprocessor.frontmatter-strip] table to book.toml.
func (c *PreprocessorRegisteredCheck) Fix() []FixResult {
	path := c.dir.TomlPath()
	result := FixResult{Path: path}

	data := slices.Clone(c.dir.raw)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if len(data) > 0 {
		data = append(data, '\n')
	}
	data = append(data, tableHeader()+"\n"...)

	if err := fileutil.RewriteFile(path, data); err != nil {
		result.Description = fmt.Sprintf("failed to update book.toml: %v", err)
		result.Error = errors.Wrapf(err, "registering preprocessor in %s", path)
		return []FixResult{result}
	}

	c.dir.raw = data
	c.missing = false
	result.Fixed = true
	result.Description = "added " + tableHeader()
	return []FixResult{result}
}

func tableHeader() string {
	return "[preprocessor." + preprocessor.Name + "]"
}

// commandOf returns the command mdBook will run for the table.
func commandOf(table PreprocessorTable) string {
	if table.Command != "" {
		return table.Command
	}
	return "mdbook-" + preprocessor.Name
}

// RendererSupportCheck verifies that every configured renderer either runs
// the preprocessor or is excluded by the table's renderers list.
type RendererSupportCheck struct {
	dir    *BookDir
	policy RendererPolicy
}

var _ Check = (*RendererSupportCheck)(nil)

// NewRendererSupportCheck creates a renderer check against policy.
func NewRendererSupportCheck(dir *BookDir, policy RendererPolicy) *RendererSupportCheck {
	return &RendererSupportCheck{dir: dir, policy: policy}
}

// Name returns the unique identifier for this check.
func (c *RendererSupportCheck) Name() string {
	return "renderer-support"
}

// Category returns the grouping for this check.
func (c *RendererSupportCheck) Category() string {
	return "book"
}

// Run executes the check.
func (c *RendererSupportCheck) Run() *CheckResult {
	if c.dir.Config == nil {
		return skipped(c)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	table, registered := c.dir.Preprocessor(preprocessor.Name)
	if !registered {
		result.Status = SeverityInfo
		result.Message = "skipped: preprocessor not registered"
		return result
	}

	renderers := c.outputs()
	var covered, excluded, unsupported []string
	for _, r := range renderers {
		switch {
		case len(table.Renderers) > 0 && !slices.Contains(table.Renderers, r):
			excluded = append(excluded, r)
		case c.policy.SupportsRenderer(r):
			covered = append(covered, r)
		default:
			unsupported = append(unsupported, r)
		}
	}

	result.Details = map[string]any{
		"renderers": renderers,
		"covered":   covered,
	}
	if len(excluded) > 0 {
		result.Details["excluded"] = excluded
	}

	if len(unsupported) > 0 {
		result.Status = SeverityWarning
		result.Details["unsupported"] = unsupported
		result.Message = fmt.Sprintf("frontmatter reaches %s unstripped: the preprocessor does not support %s",
			plural(len(unsupported), "renderer", "renderers"), strings.Join(unsupported, ", "))
		result.FixHint = "add the renderer to the renderers list in config.yaml, " +
			"or list only supported renderers in " + tableHeader()
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("preprocessor runs for %s", strings.Join(covered, ", "))
	if len(covered) == 0 {
		result.Status = SeverityWarning
		result.Message = "preprocessor is excluded from every renderer"
		result.FixHint = "check the renderers list in " + tableHeader()
	}
	return result
}

// outputs returns the renderer names in sorted order.
func (c *RendererSupportCheck) outputs() []string {
	if len(c.dir.Config.Output) == 0 {
		return []string{defaultRenderer}
	}
	names := make([]string, 0, len(c.dir.Config.Output))
	for name := range c.dir.Config.Output {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ChapterFrontmatterCheck scans chapter sources for frontmatter blocks
// that open but never close. Those chapters pass through unchanged.
type ChapterFrontmatterCheck struct {
	dir *BookDir
}

var _ Check = (*ChapterFrontmatterCheck)(nil)

// NewChapterFrontmatterCheck creates a chapter scan check.
func NewChapterFrontmatterCheck(dir *BookDir) *ChapterFrontmatterCheck {
	return &ChapterFrontmatterCheck{dir: dir}
}

// Name returns the unique identifier for this check.
func (c *ChapterFrontmatterCheck) Name() string {
	return "chapter-frontmatter"
}

// Category returns the grouping for this check.
func (c *ChapterFrontmatterCheck) Category() string {
	return "chapters"
}

// chapterScan collects per-file findings relative to the source directory.
type chapterScan struct {
	files        int
	withMatter   int
	unterminated []string
	unreadable   []string
}

// Run executes the check.
func (c *ChapterFrontmatterCheck) Run() *CheckResult {
	src := c.dir.SourceDir()
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"source_dir": src},
	}

	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		result.Status = SeverityError
		result.Message = "chapter source directory not found: " + src
		result.FixHint = "create the directory or set [book] src in book.toml"
		return result
	}

	scan, err := scanChapters(src)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("scanning chapters: %v", err)
		return result
	}

	result.Details["files"] = scan.files
	result.Details["with_frontmatter"] = scan.withMatter

	if len(scan.unterminated) > 0 || len(scan.unreadable) > 0 {
		result.Status = SeverityWarning
		var parts []string
		if n := len(scan.unterminated); n > 0 {
			result.Details["unterminated"] = scan.unterminated
			parts = append(parts, fmt.Sprintf("%s with an unterminated frontmatter fence (%s)",
				plural(n, "file", "files"), strings.Join(scan.unterminated, ", ")))
		}
		if n := len(scan.unreadable); n > 0 {
			result.Details["unreadable"] = scan.unreadable
			parts = append(parts, fmt.Sprintf("%s could not be read (%s)",
				plural(n, "file", "files"), strings.Join(scan.unreadable, ", ")))
		}
		result.Message = strings.Join(parts, "; ")
		result.FixHint = "close the block with a --- line, or remove the opening ---"
		return result
	}

	if scan.withMatter > 0 {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%d of %s carry frontmatter",
			scan.withMatter, plural(scan.files, "chapter file", "chapter files"))
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("no frontmatter in %s", plural(scan.files, "chapter file", "chapter files"))
	return result
}

func scanChapters(src string) (*chapterScan, error) {
	scan := &chapterScan{}
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		scan.files++

		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			scan.unreadable = append(scan.unreadable, rel)
			return nil
		}

		content := string(data)
		if !frontmatter.Opens(content) {
			return nil
		}
		if _, _, ok := frontmatter.Split(content); ok {
			scan.withMatter++
		} else {
			scan.unterminated = append(scan.unterminated, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", src)
	}
	return scan, nil
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, many)
}

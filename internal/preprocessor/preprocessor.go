// Package preprocessor implements the frontmatter-strip mdBook
// preprocessor: it removes a leading frontmatter block from every chapter
// of a book before the book is rendered.
package preprocessor

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/book"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/config"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/logging"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/frontmatter"
)

// Name is the preprocessor's name as used in book.toml.
const Name = "frontmatter-strip"

// Options configure a Preprocessor.
type Options struct {
	// Renderers lists the supported renderers. Empty means config.DefaultRenderers.
	Renderers []string

	// LogFrontmatter logs stripped blocks at debug level instead of trace.
	LogFrontmatter bool
}

// Preprocessor strips frontmatter from chapters.
type Preprocessor struct {
	renderers      []string
	logFrontmatter bool
}

// New creates a Preprocessor.
func New(opts Options) *Preprocessor {
	renderers := opts.Renderers
	if len(renderers) == 0 {
		renderers = config.DefaultRenderers
	}
	return &Preprocessor{
		renderers:      slices.Clone(renderers),
		logFrontmatter: opts.LogFrontmatter,
	}
}

// FromConfig creates a Preprocessor from loaded configuration.
func FromConfig(cfg *config.Config) *Preprocessor {
	if cfg == nil {
		cfg = config.Default()
	}
	return New(Options{
		Renderers:      cfg.Renderers,
		LogFrontmatter: cfg.LogFrontmatter,
	})
}

// Name returns the preprocessor's name.
func (p *Preprocessor) Name() string {
	return Name
}

// Renderers returns the supported renderer names.
func (p *Preprocessor) Renderers() []string {
	return slices.Clone(p.renderers)
}

// SupportsRenderer reports whether the preprocessor should run for the
// named renderer. Names are matched exactly.
func (p *Preprocessor) SupportsRenderer(renderer string) bool {
	return slices.Contains(p.renderers, renderer)
}

// CheckRenderer returns an error marked with errors.ErrUnsupportedRenderer
// when the named renderer is not supported.
func (p *Preprocessor) CheckRenderer(renderer string) error {
	if p.SupportsRenderer(renderer) {
		return nil
	}
	return errors.Wrapf(errors.ErrUnsupportedRenderer, "%q (supported: %v)", renderer, p.renderers)
}

// BookOptionLogFrontmatter is the key in the book's
// [preprocessor.frontmatter-strip] table that overrides LogFrontmatter.
const BookOptionLogFrontmatter = "log-frontmatter"

// logFrontmatterFor returns the LogFrontmatter setting for a run, letting
// the book's own preprocessor table override the configured value.
func (p *Preprocessor) logFrontmatterFor(c *book.Context) bool {
	if c == nil {
		return p.logFrontmatter
	}
	if v, ok := c.PreprocessorConfig(Name)[BookOptionLogFrontmatter].(bool); ok {
		return v
	}
	return p.logFrontmatter
}

// Stats summarizes a run.
type Stats struct {
	// Chapters is the number of chapters with content.
	Chapters int `json:"chapters"`
	// Stripped is the number of chapters a frontmatter block was removed from.
	Stripped int `json:"stripped"`
	// Unterminated is the number of chapters that open a fence but never
	// close it; their content is left as is.
	Unterminated int `json:"unterminated"`
}

// Run strips frontmatter from every chapter of env.Book in place.
// The extracted frontmatter is logged and discarded.
func (p *Preprocessor) Run(ctx context.Context, env *book.Envelope) (*Stats, error) {
	logger := logging.FromContext(ctx).With("preprocessor", Name)

	if env.Context != nil {
		logger.Debug("running preprocessor",
			"book", env.Context.Config("book.title").String(),
			"renderer", env.Context.Renderer,
			"mdbook_version", env.Context.MdbookVersion,
			"root", env.Context.Root)
		if r := env.Context.Renderer; r != "" {
			if err := p.CheckRenderer(r); err != nil {
				logger.Warn("running for a renderer outside the supported list", "error", err)
			}
		}
	}

	matterLevel := logging.LevelTrace
	if p.logFrontmatterFor(env.Context) {
		matterLevel = slog.LevelDebug
	}

	stats := &Stats{}
	err := env.Book.ForEachChapter(func(ch *book.Chapter) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, ok := ch.Content()
		if !ok {
			return nil
		}
		stats.Chapters++

		body, matter, found := frontmatter.Cut(content)
		switch {
		case found:
			stats.Stripped++
			logger.Log(ctx, matterLevel, "stripped frontmatter",
				"chapter", ch.Label(),
				"number", ch.Number(),
				"frontmatter", matter)
		case frontmatter.Opens(content):
			stats.Unterminated++
			logger.Warn("frontmatter fence is never closed; chapter left unchanged",
				"chapter", ch.Label(),
				"source", ch.SourcePath())
		}

		ch.SetContent(body)
		return nil
	})
	if err != nil {
		return stats, errors.Wrap(err, "processing chapters")
	}

	logger.Info("frontmatter stripped",
		"chapters", stats.Chapters,
		"stripped", stats.Stripped,
		"unterminated", stats.Unterminated)

	return stats, nil
}

// Handle runs the full preprocessor protocol: decode [context, book] from
// in, strip every chapter, and write the book to out. Nothing is written
// to out unless the whole book was processed.
func (p *Preprocessor) Handle(ctx context.Context, in io.Reader, out io.Writer) error {
	env, err := book.Decode(in)
	if err != nil {
		return err
	}

	if _, err := p.Run(ctx, env); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := book.Encode(&buf, env.Book); err != nil {
		return err
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "writing book")
	}
	return nil
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrNoRenderers indicates the renderer list is empty.
	ErrNoRenderers = errors.New("at least one renderer is required")

	// ErrInvalidRenderer indicates a malformed renderer name.
	ErrInvalidRenderer = errors.New("invalid renderer name")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Newf("unsupported config version: %d", cfg.Version))
	}

	if len(cfg.Renderers) == 0 {
		errs = append(errs, ErrNoRenderers)
	}
	for _, r := range cfg.Renderers {
		if r == "" || strings.ContainsFunc(r, isSpace) {
			errs = append(errs, &RendererError{Renderer: r, Err: ErrInvalidRenderer})
		}
	}

	return errs
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// RendererError represents an error for a specific renderer entry.
type RendererError struct {
	Renderer string
	Err      error
}

func (e *RendererError) Error() string {
	return e.Err.Error() + ": " + strconv.Quote(e.Renderer)
}

func (e *RendererError) Unwrap() error {
	return e.Err
}

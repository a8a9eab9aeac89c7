package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/paths"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/fileutil"
)

// Keys lists the configuration keys in display order.
var Keys = []string{"version", "renderers", "log_frontmatter"}

// ErrUnknownKey indicates a key that is not part of the configuration.
var ErrUnknownKey = errors.New("unknown configuration key")

// Set parses value and assigns it to key on cfg. Renderers are given as a
// comma-separated list. The result is validated; cfg is left unchanged on
// error.
func Set(cfg *Config, key, value string) error {
	next := *cfg
	next.Renderers = append([]string(nil), cfg.Renderers...)

	switch key {
	case "version":
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return errors.Wrapf(errors.Mark(err, errors.ErrInvalidConfig), "parsing version %q", value)
		}
		next.Version = v
	case "renderers":
		next.Renderers = splitList(value)
	case "log_frontmatter":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return errors.Wrapf(errors.Mark(err, errors.ErrInvalidConfig), "parsing log_frontmatter %q", value)
		}
		next.LogFrontmatter = b
	default:
		return errors.Wrapf(ErrUnknownKey, "%q (valid: %s)", key, strings.Join(Keys, ", "))
	}

	if errs := Validate(&next); len(errs) > 0 {
		return errors.Wrap(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	*cfg = next
	return nil
}

// Save writes cfg as YAML to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

// WritePath returns the file configuration changes go to: the explicit
// path if given, else the file that was loaded, else the XDG default.
func WritePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if used := ConfigFileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

// splitList splits a comma-separated string, dropping empty entries.
func splitList(s string) []string {
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

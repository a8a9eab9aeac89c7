package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the binary name and the directory name used under the XDG
// config home.
const AppName = "mdbook-frontmatter-strip"

// ConfigDirEnv overrides the configuration directory when set.
const ConfigDirEnv = "MDBOOK_FRONTMATTER_STRIP_CONFIG_DIR"

// Book layout defaults, matching mdBook.
const (
	// BookTomlName is the book configuration file at the book root.
	BookTomlName = "book.toml"

	// DefaultSourceDir is the chapter directory when book.toml sets no [book] src.
	DefaultSourceDir = "src"
)

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding config.yaml.
// ConfigDirEnv takes precedence over <ConfigHome>/mdbook-frontmatter-strip.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the path of the default configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// BookToml returns the path of book.toml for the book rooted at root.
func BookToml(root string) string {
	return filepath.Join(root, BookTomlName)
}

// SourceDir returns the chapter source directory of a book.
// An empty src means DefaultSourceDir; relative values are resolved
// against root.
func SourceDir(root, src string) string {
	if src == "" {
		src = DefaultSourceDir
	}
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(root, src)
}

// Package paths resolves the filesystem locations used by
// mdbook-frontmatter-strip.
//
// Configuration lives under the XDG config home (via github.com/adrg/xdg),
// overridable with MDBOOK_FRONTMATTER_STRIP_CONFIG_DIR:
//
//	paths.ConfigFile() // ~/.config/mdbook-frontmatter-strip/config.yaml
//
// Book locations follow mdBook's layout:
//
//	paths.BookToml(root)       // <root>/book.toml
//	paths.SourceDir(root, "")  // <root>/src
package paths

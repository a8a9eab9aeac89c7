// Package config provides configuration management for
// mdbook-frontmatter-strip.
//
// # Configuration File
//
// The file is named config.yaml and is searched for in the current
// directory (the book root when mdBook runs the preprocessor) and then in
// ~/.config/mdbook-frontmatter-strip/:
//
//	version: 1
//	renderers:
//	  - html
//	log_frontmatter: false
//
// Every key can be overridden from the environment with the
// MDBOOK_FRONTMATTER_STRIP_ prefix, for example
// MDBOOK_FRONTMATTER_STRIP_RENDERERS=html,markdown.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// Loaded configurations are validated; see [Validate].
package config

// Package main is the entry point for the mdbook-frontmatter-strip
// preprocessor.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoreinstein/mdbook-frontmatter-strip/cmd/mdbook-frontmatter-strip/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()

	if err != nil {
		os.Exit(commands.ReportError(os.Stderr, err))
	}
}

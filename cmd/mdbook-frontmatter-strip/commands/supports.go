package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/logging"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/preprocessor"
)

func init() {
	rootCmd.AddCommand(supportsCmd)
}

var supportsCmd = &cobra.Command{
	Use:   "supports <renderer>",
	Short: "Report whether a renderer is supported",
	Long: `Report whether the preprocessor runs for the given renderer.

mdBook calls this before a build. The answer is the exit status alone:
0 when the renderer is in the configured renderers list (default: html),
1 otherwise. Nothing is written to stdout.`,
	Example: `  mdbook-frontmatter-strip supports html && echo supported

See Also: mdbook-frontmatter-strip config get renderers`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{defaultsOnBadConfig: "true"},
	RunE:        runSupports,
}

func runSupports(cmd *cobra.Command, args []string) error {
	renderer := args[0]
	p := preprocessor.FromConfig(currentConfig())
	logger := logging.FromContext(cmd.Context())

	if err := p.CheckRenderer(renderer); err != nil {
		logger.Debug("renderer not supported", "error", err)
		return errors.NewExitError(nil, errors.ExitUser)
	}

	logger.Debug("renderer supported", "renderer", renderer)
	return nil
}

package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/mdbook-frontmatter-strip/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date, and supported renderers.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mdbook-frontmatter-strip version %s\n", buildinfo.Version)
		fmt.Fprintf(out, "  commit:    %s\n", buildinfo.Commit)
		fmt.Fprintf(out, "  built:     %s\n", buildinfo.Date)
		fmt.Fprintf(out, "  go:        %s\n", runtime.Version())
		fmt.Fprintf(out, "  renderers: %s\n", strings.Join(currentConfig().Renderers, ", "))
	},
}

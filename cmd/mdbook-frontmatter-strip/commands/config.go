package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/config"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/editor"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/logging"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mdbook-frontmatter-strip configuration",
	Long: `Manage configuration stored in ./config.yaml or
$XDG_CONFIG_HOME/mdbook-frontmatter-strip/config.yaml.

Keys:
  version          configuration schema version (1)
  renderers        renderers the preprocessor supports (default: html)
  log_frontmatter  log stripped blocks at debug instead of trace level

Every key can also be set through the environment, e.g.
MDBOOK_FRONTMATTER_STRIP_LOG_FRONTMATTER=true.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  mdbook-frontmatter-strip config

  # Support the markdown renderer too
  mdbook-frontmatter-strip config set renderers html,markdown

See Also: mdbook-frontmatter-strip supports`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Array values are printed one per line.`,
	Example: `  mdbook-frontmatter-strip config get renderers

See Also: mdbook-frontmatter-strip config set, mdbook-frontmatter-strip config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the configuration file.

Renderers are given as a comma-separated list. The new configuration is
validated before it is written.`,
	Example: `  mdbook-frontmatter-strip config set renderers html,markdown
  mdbook-frontmatter-strip config set log_frontmatter true

See Also: mdbook-frontmatter-strip config get, mdbook-frontmatter-strip config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List the effective configuration values in YAML format.`,
	Example: `  mdbook-frontmatter-strip config list

See Also: mdbook-frontmatter-strip config get, mdbook-frontmatter-strip config set`,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. Works even when the current
file does not validate, so it can be repaired.`,
	Example: `  EDITOR=nano mdbook-frontmatter-strip config edit

See Also: mdbook-frontmatter-strip config path`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE:        runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Long: `Print the file configuration is read from and written to: the --config
path, else the file that was found, else the default location.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.WritePath(configFile))
		return nil
	},
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(out, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	default:
		fmt.Fprintln(out, viper.GetString(key))
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg := *currentConfig()
	if err := config.Set(&cfg, key, value); err != nil {
		return errors.NewUserError(err, "Run: mdbook-frontmatter-strip config --help")
	}

	path := config.WritePath(configFile)
	if err := config.Save(path, &cfg); err != nil {
		return errors.NewSystemError(err, "")
	}

	logging.FromContext(cmd.Context()).Debug("config written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(currentConfig())
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "marshaling config"), "")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.WritePath(configFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "config file %s", path),
			"Create it with: mdbook-frontmatter-strip config set renderers html")
	}

	err := editor.Open(path, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to an installed editor")
	}
	return nil
}

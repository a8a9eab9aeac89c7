// Package commands implements the CLI commands for mdbook-frontmatter-strip.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/mdbook-frontmatter-strip/cmd"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/config"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/logging"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/preprocessor"
)

// debugEnv raises verbosity when no -v flag is given: 1 or true for debug,
// 2 for trace.
const debugEnv = "MDBOOK_FRONTMATTER_STRIP_DEBUG"

// skipConfigCheck is the annotation that lets a command run with a broken
// configuration file, so the file can still be inspected and repaired.
const skipConfigCheck = "skip-config-check"

// defaultsOnBadConfig is the annotation for commands mdBook runs from the
// book root. A config.yaml found there implicitly may belong to something
// else, so when it cannot be loaded these commands log a warning and use
// the defaults. A file named with --config is always fatal.
const defaultsOnBadConfig = "defaults-on-bad-config"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// loadedConfig is the configuration read by initConfig.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"only log errors")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/mdbook-frontmatter-strip/config.yaml)")

	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("mdbook-frontmatter-strip version {{.Version}}\n")

	// Errors are printed by ReportError with their exit code.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "mdbook-frontmatter-strip",
	Short: "mdBook preprocessor that strips frontmatter from chapters",
	Long: `mdbook-frontmatter-strip removes a leading "---" fenced frontmatter block
from every chapter of an mdBook book before it is rendered.

mdBook runs it as a preprocessor: the [context, book] JSON pair arrives on
stdin and the processed book is written to stdout. Register it in book.toml:

  [preprocessor.frontmatter-strip]

A block is recognised only when the first line of a chapter is "---" and a
later line closes it with "---". Chapters whose fence is never closed are
left untouched.`,
	Example: `  # What mdBook runs during a build
  mdbook-frontmatter-strip < input.json > output.json

  # Renderer probe
  mdbook-frontmatter-strip supports html

  # Strip a file by hand
  mdbook-frontmatter-strip strip src/intro.md

  # Check a book directory
  mdbook-frontmatter-strip doctor ./docs

  See Also: mdbook-frontmatter-strip doctor, mdbook-frontmatter-strip config`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{defaultsOnBadConfig: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: runPreprocessor,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logging.ReplaceLevelName,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("invalid --log-format %q", logFormat), "Use --log-format text or --log-format json")
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	logger := slog.New(logging.Tee(handlers...))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a configuration load failure unless the command is
// exempt from needing a valid configuration.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Annotations[skipConfigCheck] != "" {
		return nil
	}
	if configLoadErr == nil {
		return nil
	}
	if configFile == "" && cmd.Annotations[defaultsOnBadConfig] != "" {
		logging.FromContext(cmd.Context()).Warn("ignoring unusable config file, using defaults",
			"path", config.ConfigFileUsed(),
			"error", configLoadErr)
		loadedConfig = nil
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

// currentConfig returns the loaded configuration, or the defaults when the
// command runs without one.
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

func runPreprocessor(cmd *cobra.Command, _ []string) error {
	in := cmd.InOrStdin()
	if logging.IsTerminal(in) {
		return errors.NewUserError(
			errors.Wrap(errors.ErrMalformedEnvelope, "stdin is a terminal"),
			"mdBook runs this command during `mdbook build`; see --help for standalone use")
	}

	p := preprocessor.FromConfig(currentConfig())
	if err := p.Handle(cmd.Context(), in, cmd.OutOrStdout()); err != nil {
		if errors.Is(err, errors.ErrMalformedEnvelope) {
			return errors.NewUserError(err, "Expected the [context, book] JSON pair mdBook writes to a preprocessor")
		}
		return errors.NewSystemError(err, "")
	}
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

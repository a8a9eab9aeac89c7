package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/doctor"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/logging"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/preprocessor"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"register the preprocessor in book.toml when it is missing")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [book-dir]",
	Short: "Diagnose an mdBook project",
	Long: `Run diagnostic checks on an mdBook project (default: the current directory).

Checks that book.toml parses, that the preprocessor is registered, that every
configured renderer is covered, and that no chapter opens a frontmatter block
without closing it.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Check the book in the current directory
  mdbook-frontmatter-strip doctor

  # Check another book and register the preprocessor if needed
  mdbook-frontmatter-strip doctor --fix ./docs

See Also: mdbook-frontmatter-strip supports`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}

	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}

	return nil
}

// newDoctorRunner registers every book check against the book at root.
func newDoctorRunner(root string, policy doctor.RendererPolicy) *doctor.Runner {
	dir := doctor.LoadBookDir(root)

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewBookTomlCheck(dir))
	runner.AddCheck(doctor.NewPreprocessorRegisteredCheck(dir))
	runner.AddCheck(doctor.NewRendererSupportCheck(dir, policy))
	runner.AddCheck(doctor.NewChapterFrontmatterCheck(dir))
	return runner
}

func runDoctor(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	logger := logging.FromContext(cmd.Context())
	policy := preprocessor.FromConfig(currentConfig())

	runner := newDoctorRunner(root, policy)
	report := runner.Run()

	var fixes []doctor.FixResult
	if doctorFix {
		fixes = runner.Fix()
		if len(fixes) > 0 {
			logger.Info("applied fixes, re-running checks", "fixes", len(fixes))
			report = newDoctorRunner(root, policy).Run()
		}
	}

	if !doctorQuiet {
		format := doctor.FormatText
		if doctorJSON {
			format = doctor.FormatJSON
		}
		if err := doctor.NewReporter(cmd.OutOrStdout(), format, doctorVerbose).Report(report, fixes); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	// Exit status carries the result; the report already said why.
	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

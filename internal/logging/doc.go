// Package logging provides structured logging for mdbook-frontmatter-strip
// using slog.
//
// mdBook reads the processed book from the preprocessor's stdout, so every
// logger built here writes to stderr or a log file, never stdout.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("stripped frontmatter", "chapters", 12)
//
// # Levels
//
// [LevelFromVerbosity] maps -v counts to levels: none is Warn, -v is Info,
// -vv is Debug and -vvv is [LevelTrace].
//
// # Context
//
// Commands store their logger with [NewContext]; library code retrieves it
// with [FromContext], which falls back to slog.Default.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging

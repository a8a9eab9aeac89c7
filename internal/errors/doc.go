// Package errors provides error handling conventions for
// mdbook-frontmatter-strip.
//
// It re-exports the constructors and inspection helpers of
// github.com/cockroachdb/errors so callers import a single errors package,
// defines sentinel errors for the failure conditions at the process
// boundary, and provides an ExitError type that carries a process exit code.
//
// # Sentinel Errors
//
//	if errors.Is(err, errors.ErrMalformedEnvelope) {
//	    // mdBook sent something other than [context, book]
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): invalid input, configuration, or unsupported renderer
//   - ExitSystem (2): I/O failure reading or writing streams and files
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and an optional
// suggestion. A nil Err means "exit silently with Code", which is how the
// renderer probe reports an unsupported renderer:
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors

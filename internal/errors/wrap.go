package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// New returns an error with a stack trace.
func New(msg string) error { return crdb.NewWithDepth(1, msg) }

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...any) error { return crdb.NewWithDepthf(1, format, args...) }

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error { return crdb.WrapWithDepth(1, err, msg) }

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.WrapWithDepthf(1, err, format, args...)
}

// Mark wraps err so that errors.Is(err, reference) reports true.
func Mark(err, reference error) error { return crdb.Mark(err, reference) }

// WithHint attaches a user-facing hint to err.
func WithHint(err error, hint string) error { return crdb.WithHint(err, hint) }

// GetAllHints returns the hints attached anywhere in the chain of err.
func GetAllHints(err error) []string { return crdb.GetAllHints(err) }

// Is reports whether any error in the chain of err matches reference.
func Is(err, reference error) bool { return crdb.Is(err, reference) }

// As finds the first error in the chain of err that matches target.
func As(err error, target any) bool { return crdb.As(err, target) }

// Join wraps errs into one error, dropping nil entries. It returns nil when
// every entry is nil.
func Join(errs ...error) error { return crdb.Join(errs...) }

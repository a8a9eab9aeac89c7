package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "success code with error",
			err:  NewExitError(errors.New("unexpected"), ExitSuccess),
			want: "unexpected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrMalformedEnvelope, ExitUser),
			wantTarget: ErrMalformedEnvelope,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(Wrap(ErrUnsupportedRenderer, "probing renderer"), ExitUser),
			wantTarget: ErrUnsupportedRenderer,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrInvalidConfig,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestExitError_As(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantAs   bool
	}{
		{
			name:     "direct ExitError",
			err:      NewExitError(ErrNotFound, ExitUser),
			wantCode: ExitUser,
			wantAs:   true,
		},
		{
			name:     "wrapped ExitError",
			err:      Wrap(NewSystemError(errors.New("broken pipe"), ""), "writing book"),
			wantCode: ExitSystem,
			wantAs:   true,
		},
		{
			name:     "non-ExitError",
			err:      ErrNotFound,
			wantCode: 0,
			wantAs:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitErr *ExitError
			gotAs := As(tt.err, &exitErr)
			if gotAs != tt.wantAs {
				t.Errorf("As() = %v, want %v", gotAs, tt.wantAs)
			}
			if gotAs && exitErr.Code != tt.wantCode {
				t.Errorf("ExitError.Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
		})
	}
}

func TestExitError_Silent(t *testing.T) {
	if !NewExitError(nil, ExitUser).Silent() {
		t.Error("ExitError with nil Err should be silent")
	}
	if NewExitError(ErrNotFound, ExitUser).Silent() {
		t.Error("ExitError with an underlying error should not be silent")
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrMalformedEnvelope", ErrMalformedEnvelope, "malformed preprocessor input"},
		{"ErrUnsupportedRenderer", ErrUnsupportedRenderer, "unsupported renderer"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid configuration"},
		{"ErrNotFound", ErrNotFound, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}
}

func TestErrorWrappingChain(t *testing.T) {
	baseErr := ErrMalformedEnvelope
	wrappedOnce := Wrap(baseErr, "decoding envelope")
	wrappedTwice := Wrapf(wrappedOnce, "running %s", "frontmatter-strip")
	exitErr := NewExitError(wrappedTwice, ExitUser)

	if !Is(exitErr, ErrMalformedEnvelope) {
		t.Error("Is() should find ErrMalformedEnvelope through wrapping chain")
	}

	var target *ExitError
	if !As(exitErr, &target) {
		t.Error("As() should find ExitError")
	}

	want := "running frontmatter-strip: decoding envelope: malformed preprocessor input"
	if got := exitErr.Error(); got != want {
		t.Errorf("ExitError.Error() = %q, want %q", got, want)
	}
}

func TestMarkAndHints(t *testing.T) {
	err := Mark(Newf("expected 2 elements, got %d", 3), ErrMalformedEnvelope)
	if !Is(err, ErrMalformedEnvelope) {
		t.Error("marked error should match its reference")
	}
	if got := err.Error(); got != "expected 2 elements, got 3" {
		t.Errorf("Error() = %q", got)
	}

	hinted := WithHint(err, "is mdbook invoking the preprocessor?")
	hints := GetAllHints(hinted)
	if len(hints) != 1 || hints[0] != "is mdbook invoking the preprocessor?" {
		t.Errorf("GetAllHints() = %v", hints)
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewUserError", func(t *testing.T) {
		e := NewUserError(errors.New("user error"), "check input")
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "check input" {
			t.Errorf("Suggestion = %q, want 'check input'", e.Suggestion)
		}
	})

	t.Run("NewSystemError", func(t *testing.T) {
		e := NewSystemError(errors.New("system error"), "check logs")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		e := NewConfigError(errors.New("config error"))
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "Run: mdbook-frontmatter-strip config list" {
			t.Errorf("Suggestion = %q", e.Suggestion)
		}
	})
}

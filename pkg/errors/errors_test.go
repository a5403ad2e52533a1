package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("no such file or directory")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", New(ErrCodeConfigInvalid, "missing field %q", "repo_url"), `CONFIG_INVALID: missing field "repo_url"`},
		{"with cause", Wrap(ErrCodeConfigInvalid, cause, "read config %s", "depviz.json"), "CONFIG_INVALID: read config depviz.json: no such file or directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapChain(t *testing.T) {
	cause := context.DeadlineExceeded
	err := Wrap(ErrCodeRootUnreachable, cause, "resolving serde")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", New(ErrCodeInvalidInput, "bad flag"), ErrCodeInvalidInput},
		{"outermost code wins", Wrap(ErrCodeRenderFailed, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeRenderFailed},
		{"behind fmt wrapping", fmt.Errorf("run: %w", New(ErrCodeRootUnreachable, "gone")), ErrCodeRootUnreachable},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Error("Is(INTERNAL_ERROR) = true for an unrelated error")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "--output is required"), "--output is required"},
		{"coded with cause", Wrap(ErrCodeRenderFailed, errors.New("disk full"), "write out.png"), "write out.png: disk full"},
		{"plain", errors.New("plain error"), "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config", New(ErrCodeConfigInvalid, "bad"), ExitConfig},
		{"invalid package", New(ErrCodeInvalidPackage, "bad"), ExitConfig},
		{"invalid input", New(ErrCodeInvalidInput, "bad"), ExitConfig},
		{"root unreachable", New(ErrCodeRootUnreachable, "gone"), ExitUnreachable},
		{"registry", New(ErrCodeRegistry, "500"), ExitUnreachable},
		{"render", New(ErrCodeRenderFailed, "boom"), ExitFailure},
		{"internal", New(ErrCodeInternal, "boom"), ExitFailure},
		{"plain", errors.New("plain"), ExitFailure},
		{"cancelled code", New(ErrCodeCancelled, "stop"), ExitInterrupted},
		{"context canceled", Wrap(ErrCodeRenderFailed, context.Canceled, "render"), ExitInterrupted},
		{"deadline is not an interrupt", Wrap(ErrCodeRootUnreachable, context.DeadlineExceeded, "serde"), ExitUnreachable},
		{"wrapped", fmt.Errorf("run: %w", New(ErrCodeConfigInvalid, "bad")), ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

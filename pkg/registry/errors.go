package registry

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a registry failure.
type ErrorKind int

const (
	// ErrNetwork covers transport failures: DNS, connection resets, timeouts.
	ErrNetwork ErrorKind = iota + 1
	// ErrStatus is any non-2xx response other than 404.
	ErrStatus
	// ErrNotFound means the package or version does not exist.
	ErrNotFound
	// ErrDecode means the response body was not valid JSON for the expected shape.
	ErrDecode
	// ErrMissingField means the response decoded but lacked a required field.
	ErrMissingField
)

var errorKindNames = map[ErrorKind]string{
	ErrNetwork:      "network",
	ErrStatus:       "http status",
	ErrNotFound:     "not found",
	ErrDecode:       "decode",
	ErrMissingField: "missing field",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// FetchError is the single error type returned by every [Client].
type FetchError struct {
	Kind    ErrorKind
	Package string // Package the request was about
	Message string // Human-readable detail
	Status  int    // HTTP status code, 0 when not applicable
	Err     error  // Underlying cause, may be nil
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Package != "" {
		return e.Package + ": " + e.Detail()
	}
	return e.Detail()
}

// Detail is the error text without the package prefix, for display next to
// the package itself.
func (e *FetchError) Detail() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Temporary reports whether retrying the same request could succeed:
// network failures, 5xx responses and rate limiting.
func (e *FetchError) Temporary() bool {
	switch e.Kind {
	case ErrNetwork:
		return true
	case ErrStatus:
		return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
	}
	return false
}

// NewFetchError builds a FetchError for pkg.
func NewFetchError(kind ErrorKind, pkg string, err error, format string, args ...any) *FetchError {
	return &FetchError{
		Kind:    kind,
		Package: pkg,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// AsFetchError extracts a *FetchError from err. Errors that are not already
// FetchErrors are wrapped as ErrNetwork, which is how context cancellation and
// other transport-level failures surface.
func AsFetchError(err error, pkg string) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return NewFetchError(ErrNetwork, pkg, err, "request failed")
}

// IsNotFound reports whether err is a FetchError of kind ErrNotFound.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == ErrNotFound
}

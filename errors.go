package jsonpath

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorCode identifies the category of a jsonpath error.
type ErrorCode int

const (
	// ErrInvalidPath indicates a malformed JSONPath expression, or a
	// mismatch between the number of "[?]" placeholders in a path and the
	// number of external filters supplied to Compile.
	ErrInvalidPath ErrorCode = iota + 1
	// ErrPathNotFound indicates a token failed to match a required
	// intermediate node during evaluation.
	ErrPathNotFound
	// ErrInvalidArgument indicates a nil document was passed to Read or
	// Paths, or a YAML configuration could not be parsed. A nil
	// Configuration is not an error (DefaultConfiguration is used instead),
	// and a non-container document is not rejected.
	ErrInvalidArgument
	// ErrUnsupported indicates an unknown comparator or criterion relation.
	ErrUnsupported
	// ErrInvalidJSON indicates the input could not be parsed by the
	// configured provider.
	ErrInvalidJSON
	// ErrInvalidModel is reserved for collaborators layered on top of this
	// package (object mapping, mutation façades); the core never raises it.
	ErrInvalidModel
	// ErrCancelled indicates a context passed to an evaluation was
	// cancelled or timed out.
	ErrCancelled
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidPath:
		return "InvalidPath"
	case ErrPathNotFound:
		return "PathNotFound"
	case ErrInvalidArgument:
		return "InvalidArgument"
	case ErrUnsupported:
		return "Unsupported"
	case ErrInvalidJSON:
		return "InvalidJSON"
	case ErrInvalidModel:
		return "InvalidModel"
	case ErrCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Error is the structured error type returned by every jsonpath operation.
// Use Code to programmatically distinguish error categories, and
// CorrelationID to group the handful of log lines that belong to one failed
// Read when many evaluations run concurrently.
type Error struct {
	Code ErrorCode
	// Message is a human-readable description.
	Message string
	// Fragment is the offending path fragment, when known.
	Fragment string
	// Cause is the underlying error, if any.
	Cause error
	// CorrelationID is a random identifier stamped on construction, fit for
	// a host's structured logs.
	CorrelationID string
}

func newError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg, CorrelationID: uuid.NewString()}
}

func newErrorf(code ErrorCode, format string, args ...interface{}) *Error {
	return newError(code, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Fragment != "" {
		if e.Cause != nil {
			return fmt.Sprintf("jsonpath: %s (fragment %q): %v [%s]", e.Message, e.Fragment, e.Cause, e.CorrelationID)
		}
		return fmt.Sprintf("jsonpath: %s (fragment %q) [%s]", e.Message, e.Fragment, e.CorrelationID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("jsonpath: %s: %v [%s]", e.Message, e.Cause, e.CorrelationID)
	}
	return fmt.Sprintf("jsonpath: %s [%s]", e.Message, e.CorrelationID)
}

// Unwrap returns the underlying cause, supporting errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// withFragment returns a copy of e annotated with the offending fragment.
func (e *Error) withFragment(fragment string) *Error {
	cp := *e
	cp.Fragment = fragment
	return &cp
}

// IsPathError reports whether err is a JSONPath syntax/compilation error.
func IsPathError(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == ErrInvalidPath
}

// IsNotFound reports whether err indicates a missing intermediate node.
func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == ErrPathNotFound
}

// IsInvalidArgument reports whether err indicates a bad Read argument.
func IsInvalidArgument(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == ErrInvalidArgument
}

// IsCancelled reports whether err is a context cancellation error.
func IsCancelled(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == ErrCancelled
}

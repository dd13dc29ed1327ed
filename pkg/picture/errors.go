package picture

import (
	"errors"

	"picam.api/v0/pkg/command"
)

// Kind classifies why an operation failed.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindFilesystem
	KindExternalTool
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFilesystem:
		return "filesystem"
	case KindExternalTool:
		return "external_tool"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

var (
	ErrMissingDirectory = errors.New("request body needs directory")
	ErrInvalidDirectory = errors.New("directory must be a relative path inside the picture root")
	ErrInvalidName      = errors.New("name must not contain path separators")
)

// Error is the single failure type returned by Service operations.
type Error struct {
	Kind    Kind
	Op      Op
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err, or 0 when err is nil or
// did not come from this package.
func KindOf(err error) Kind {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return 0
}

// FailureText flattens an error into the "Error[: detail]" text handed back
// to callers.
func FailureText(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return "Error: " + msg
	}
	return "Error"
}

func validationError(op Op, err error) error {
	return &Error{Kind: KindValidation, Op: op, Message: err.Error(), Err: err}
}

func filesystemError(op Op, err error) error {
	return &Error{Kind: KindFilesystem, Op: op, Message: err.Error(), Err: err}
}

// toolError keeps the external tool's own message and separates timeouts
// from ordinary failures.
func toolError(op Op, err error) error {
	kind := KindExternalTool
	var cmdErr *command.Error
	if errors.As(err, &cmdErr) && cmdErr.TimedOut {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Op: op, Message: err.Error(), Err: err}
}

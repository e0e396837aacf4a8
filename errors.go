package yank

import (
	"errors"
	"fmt"

	"github.com/aymanbagabas/yank/clipboard"
)

// ErrInvalidUTF8 indicates the input stream is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Kind classifies a Copy failure.
type Kind string

const (
	// KindInput is a failure reading the input stream.
	KindInput Kind = "input"
	// KindDecode is input that is not valid UTF-8.
	KindDecode Kind = "decode"
	// KindClipboard is a failure storing text in the clipboard.
	KindClipboard Kind = "clipboard"
)

// Error is returned by Copy and CopyText.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, message string, cause error) error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Policy is what Paste does with a failed clipboard read.
type Policy int

const (
	// RecoverAsEmpty treats the failure as an empty clipboard.
	RecoverAsEmpty Policy = iota
	// LogAndRecoverAsEmpty logs the failure, then treats it as an empty
	// clipboard.
	LogAndRecoverAsEmpty
)

func (p Policy) String() string {
	switch p {
	case RecoverAsEmpty:
		return "recover-as-empty"
	case LogAndRecoverAsEmpty:
		return "log-and-recover-as-empty"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ClassifyReadError maps a clipboard read error to a Policy. A clipboard
// without text is expected and recovered silently. Everything else, including
// a busy or inaccessible clipboard, is logged but still recovered so that a
// read never aborts the caller. Real failures are masked as a result.
func ClassifyReadError(err error) Policy {
	if errors.Is(err, clipboard.ErrNoText) {
		return RecoverAsEmpty
	}
	return LogAndRecoverAsEmpty
}

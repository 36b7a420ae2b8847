package types

import (
	"errors"
	"fmt"
)

// ErrorKind tags the variants of Error.
type ErrorKind int

// Error kinds. Unauthorized is reserved: no operation raises it today.
const (
	KindNotFound ErrorKind = iota + 1
	KindValidation
	KindUnauthorized
)

// String returns the wire name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_error"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// Error is the result of a rejected operation. Kind is one of the closed set
// of ErrorKind values; Msg is the human-readable reason.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches another *Error of the same kind. A target without a message
// matches every message, which is how the Err* sentinels work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// Sentinels for errors.Is checks by kind.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

// NotFound reports an absent id or referenced entity.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Validation reports input that fails a business rule.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// Unauthorized reports a rejected caller.
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }

// KindOf extracts the kind of a typed error anywhere in err's chain.
// The boolean is false for untyped (internal) errors.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

package workflow

import (
	"errors"
	"fmt"

	"github.com/awantoch/flowsketch/constants"
)

// Kind classifies why a generation failed.
type Kind string

const (
	KindInvalidInput      Kind = "InvalidInput"
	KindMissingCredential Kind = "MissingCredential"
	KindUpstreamFailure   Kind = "UpstreamFailure"
	KindEmptyCompletion   Kind = "EmptyCompletion"
	KindMalformedJSON     Kind = "MalformedJSON"
	KindInvalidShape      Kind = "InvalidShape"
)

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
	ErrUpstreamFailure   = &Error{Kind: KindUpstreamFailure}
	ErrEmptyCompletion   = &Error{Kind: KindEmptyCompletion}
	ErrMalformedJSON     = &Error{Kind: KindMalformedJSON}
	ErrInvalidShape      = &Error{Kind: KindInvalidShape}
)

// Error is a generation failure of a known Kind. Msg is safe to show callers; Err carries
// the underlying cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsParseFailure reports whether err means the completion came back in an unusable form.
func IsParseFailure(err error) bool {
	switch KindOf(err) {
	case KindMalformedJSON, KindInvalidShape:
		return true
	}
	return false
}

// UserMessage is the message shown to callers for a failed generation. Parse failures hide
// their details, which stay in the server logs.
func UserMessage(err error) string {
	switch {
	case KindOf(err) == KindInvalidInput:
		return constants.ResponsePromptRequired
	case IsParseFailure(err):
		return constants.ResponseParseFailed
	default:
		return fmt.Sprintf(constants.ResponseGenerateFailedFmt, err.Error())
	}
}

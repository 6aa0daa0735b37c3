package msh

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every error returned by Load, Save and Validate
type ErrorKind int

const (
	// InvalidFormat marks malformed, truncated or inconsistent input
	InvalidFormat ErrorKind = iota + 1
	// UnsupportedFeature marks well-formed input outside the supported
	// version, encoding or element-type matrix
	UnsupportedFeature
	// CorruptData marks a Document invariant violation found by Validate
	CorruptData
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid format"
	case UnsupportedFeature:
		return "unsupported feature"
	case CorruptData:
		return "corrupt data"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error carries the kind, the section being processed and a message
type Error struct {
	Kind    ErrorKind
	Section string
	Msg     string
	Err     error
}

var (
	ErrInvalidFormat      = &Error{Kind: InvalidFormat}
	ErrUnsupportedFeature = &Error{Kind: UnsupportedFeature}
	ErrCorruptData        = &Error{Kind: CorruptData}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Section != "" {
		msg += " in " + e.Section
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidFormat)
// works regardless of section or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the ErrorKind of err, or 0 if err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func invalidFormat(section, format string, args ...interface{}) *Error {
	return &Error{Kind: InvalidFormat, Section: section, Msg: fmt.Sprintf(format, args...)}
}

func unsupported(section, format string, args ...interface{}) *Error {
	return &Error{Kind: UnsupportedFeature, Section: section, Msg: fmt.Sprintf(format, args...)}
}

func corrupt(format string, args ...interface{}) *Error {
	return &Error{Kind: CorruptData, Msg: fmt.Sprintf(format, args...)}
}

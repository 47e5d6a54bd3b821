package domain

import (
	"errors"
	"fmt"
)

// ErrKind is the machine-checkable class of a domain error. Handlers map it
// to an HTTP status; everything else about the error is the human message.
type ErrKind string

const (
	KindInvalidInput     ErrKind = "invalid_input"
	KindNotFound         ErrKind = "not_found"
	KindForbidden        ErrKind = "forbidden"
	KindInvalidOperation ErrKind = "invalid_operation"
)

type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func ErrInvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func ErrNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func ErrForbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func ErrInvalidOperation(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidOperation, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

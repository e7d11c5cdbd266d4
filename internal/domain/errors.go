package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so boundaries can map them to responses.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindValidation      ErrorKind = "VALIDATION"
	KindIO              ErrorKind = "IO"
	KindConflict        ErrorKind = "CONFLICT"
	KindExternalService ErrorKind = "EXTERNAL_SERVICE"
	KindExternalTimeout ErrorKind = "EXTERNAL_TIMEOUT"
)

// Error is the typed failure returned by stores and request handlers.
type Error struct {
	Kind    ErrorKind
	Entity  string
	ID      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Entity != "" {
		msg = fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}
	if e.Err != nil {
		if msg == "" {
			return string(e.Kind) + ": " + e.Err.Error()
		}
		return string(e.Kind) + ": " + msg + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing entity, naming its id.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func IOFailure(op string, err error) *Error {
	return &Error{Kind: KindIO, Message: op, Err: err}
}

func Conflict(entity, id string) *Error {
	return &Error{
		Kind:    KindConflict,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %q was modified concurrently", entity, id),
	}
}

func ExternalFailure(op string, err error) *Error {
	return &Error{Kind: KindExternalService, Message: op, Err: err}
}

func ExternalTimeout(op string, err error) *Error {
	return &Error{Kind: KindExternalTimeout, Message: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsRetryable reports whether repeating the same request may succeed.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindIO, KindConflict, KindExternalService, KindExternalTimeout:
		return true
	case KindNotFound, KindValidation:
		return false
	}
	return false
}

package errors

import (
	goErrors "errors"
	"fmt"
)

// New returns an error formatted according to the format specifier.
func New(format string, args ...interface{}) error {
	if len(args) == 0 {
		return goErrors.New(format)
	}
	return fmt.Errorf(format, args...)
}

// contextError annotates an error with a short description of what the
// caller was doing when the error occurred.
type contextError struct {
	err     error
	context string
}

func (err contextError) Error() string {
	return fmt.Sprintf("%s: %s", err.context, err.err)
}

func (err contextError) Unwrap() error {
	return err.err
}

// WithContext wraps `err` with `context`. Wrapping a nil error returns nil.
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return contextError{err: err, context: context}
}

// RootCause returns the innermost error that was wrapped with WithContext.
// Errors wrapped by other means (such as FilesystemAccessError) are not
// unwrapped, so that callers can type switch on them.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(contextError)
		if !ok {
			return err
		}
		err = ctxErr.err
	}
}

// Is is a passthrough to the standard library.
func Is(err, target error) bool {
	return goErrors.Is(err, target)
}

// As is a passthrough to the standard library.
func As(err error, target interface{}) bool {
	return goErrors.As(err, target)
}

// FriendlyError is an error whose message is meant to be shown directly to
// the user, without any of the context used for debugging.
type FriendlyError struct {
	template string
	args     []interface{}
}

// NewFriendlyError creates a FriendlyError from a format specifier.
func NewFriendlyError(template string, args ...interface{}) error {
	return FriendlyError{template: template, args: args}
}

func (err FriendlyError) Error() string {
	return err.FriendlyMessage()
}

// FriendlyMessage returns the message that should be shown to the user.
func (err FriendlyError) FriendlyMessage() string {
	return fmt.Sprintf(err.template, err.args...)
}

type friendlyMessager interface {
	FriendlyMessage() string
}

// GetPrintableMessage returns the message that should be printed when `err`
// terminates the program. If any error in the chain has a friendly message,
// that message is used. Otherwise, the full error string is returned.
func GetPrintableMessage(err error) string {
	if err == nil {
		return ""
	}

	for curr := err; curr != nil; curr = goErrors.Unwrap(curr) {
		if friendly, ok := curr.(friendlyMessager); ok {
			return friendly.FriendlyMessage()
		}
	}
	return err.Error()
}

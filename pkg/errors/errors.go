package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrSerialization = errors.New("serialization failure")
	ErrTransport     = errors.New("store unavailable")
)

// Error codes carried by *Error
const (
	CodeNotFound      = "not_found"
	CodeAlreadyExists = "already_exists"
	CodeInvalidInput  = "invalid_input"
	CodeSerialization = "serialization"
	CodeTransport     = "transport"
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
	kind    error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error and, when set, the taxonomy sentinel
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    GetCode(err),
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
		kind:    kindOf(code),
	}
}

// NotFound and the helpers below classify err into the taxonomy while
// keeping the cause, if any, in the chain.
func NotFound(err error, message string) error {
	return &Error{Code: CodeNotFound, Message: message, Err: err, kind: ErrNotFound}
}

func AlreadyExists(err error, message string) error {
	return &Error{Code: CodeAlreadyExists, Message: message, Err: err, kind: ErrAlreadyExists}
}

func InvalidInput(message string) error {
	return &Error{Code: CodeInvalidInput, Message: message, kind: ErrInvalidInput}
}

func Serialization(err error, message string) error {
	return WrapWithCode(err, CodeSerialization, message)
}

func Transport(err error, message string) error {
	return WrapWithCode(err, CodeTransport, message)
}

func kindOf(code string) error {
	switch code {
	case CodeNotFound:
		return ErrNotFound
	case CodeAlreadyExists:
		return ErrAlreadyExists
	case CodeInvalidInput:
		return ErrInvalidInput
	case CodeSerialization:
		return ErrSerialization
	case CodeTransport:
		return ErrTransport
	}
	return nil
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists returns true if the error is a uniqueness violation
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidInput returns true if the caller supplied an unusable value
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSerialization returns true if a document could not be encoded or decoded
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}

// IsTransport returns true if the store could not be reached
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

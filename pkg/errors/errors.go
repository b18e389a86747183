package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the category of a failure in the archive pipeline
type ErrorType string

const (
	ErrorTypeNetwork           ErrorType = "network"
	ErrorTypeAPI               ErrorType = "api"
	ErrorTypeMalformedResponse ErrorType = "malformed_response"
	ErrorTypeConversion        ErrorType = "conversion"
	ErrorTypeFilesystem        ErrorType = "filesystem"
	ErrorTypeInvalidItem       ErrorType = "invalid_item"
	ErrorTypeConfig            ErrorType = "config"
)

// Error represents a pipeline error with type information.
// Code carries the HTTP status for api errors and is 0 otherwise.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given type
func New(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given type around a cause
func Wrap(t ErrorType, err error, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...), Err: err}
}

// APIStatus creates an api error for a non-success HTTP status
func APIStatus(code int, url string) *Error {
	return &Error{
		Type:    ErrorTypeAPI,
		Message: fmt.Sprintf("unexpected status from %s", url),
		Code:    code,
	}
}

// TypeOf returns the type of the first *Error in err's chain, or "" if none
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsType reports whether err's chain contains an *Error of type t
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileSize     ErrorCode = "FILE_SIZE"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrRename       ErrorCode = "RENAME"

	// Sink errors
	ErrBuffer     ErrorCode = "BUFFER"
	ErrCodecInit  ErrorCode = "CODEC_INIT"
	ErrCodecWrite ErrorCode = "CODEC_WRITE"

	// Merge errors
	ErrCopy             ErrorCode = "COPY"
	ErrAppendCompressed ErrorCode = "APPEND_COMPRESSED"
)

// ConcatError represents a structured error with code and details
type ConcatError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ConcatError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConcatError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ConcatError) Is(target error) bool {
	var targetErr *ConcatError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ConcatError with the given code and message
func New(code ErrorCode, message string) *ConcatError {
	return &ConcatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ConcatError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ConcatError {
	return &ConcatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ConcatError
func Wrap(err error, code ErrorCode, message string) *ConcatError {
	if err == nil {
		return nil
	}
	return &ConcatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ConcatError {
	if err == nil {
		return nil
	}
	return &ConcatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WrapOp wraps a filesystem failure, recording the operation and the path
// it was applied to as details.
func WrapOp(err error, code ErrorCode, op, path string) *ConcatError {
	if err == nil {
		return nil
	}
	return Wrapf(err, code, "%s %s", op, path).
		WithDetail("op", op).
		WithDetail("path", path)
}

// WithDetail adds a detail to the error
func (e *ConcatError) WithDetail(key string, value interface{}) *ConcatError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ConcatError) WithDetails(details map[string]interface{}) *ConcatError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var concatErr *ConcatError
	if errors.As(err, &concatErr) {
		return concatErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ConcatError
func GetErrorCode(err error) ErrorCode {
	var concatErr *ConcatError
	if errors.As(err, &concatErr) {
		return concatErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ConcatError
func GetErrorDetails(err error) map[string]interface{} {
	var concatErr *ConcatError
	if errors.As(err, &concatErr) {
		return concatErr.Details
	}
	return nil
}

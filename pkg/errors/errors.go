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
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Registry errors
	ErrRegistrySealed ErrorCode = "REGISTRY_SEALED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Pipeline description errors
	ErrPipelineLoad    ErrorCode = "PIPELINE_LOAD"
	ErrPipelineInvalid ErrorCode = "PIPELINE_INVALID"

	// Output errors
	ErrRender     ErrorCode = "RENDER"
	ErrOutputOpen ErrorCode = "OUTPUT_OPEN"
)

// HttpgraphError represents a structured error with code and details
type HttpgraphError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HttpgraphError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HttpgraphError) Unwrap() error {
	return e.Wrapped
}

// Is matches any HttpgraphError carrying the same code
func (e *HttpgraphError) Is(target error) bool {
	var targetErr *HttpgraphError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HttpgraphError with the given code and message
func New(code ErrorCode, message string) *HttpgraphError {
	return &HttpgraphError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HttpgraphError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HttpgraphError {
	return &HttpgraphError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *HttpgraphError {
	if err == nil {
		return nil
	}
	return &HttpgraphError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HttpgraphError {
	if err == nil {
		return nil
	}
	return &HttpgraphError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HttpgraphError) WithDetail(key string, value interface{}) *HttpgraphError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hgErr *HttpgraphError
	if errors.As(err, &hgErr) {
		return hgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var hgErr *HttpgraphError
	if errors.As(err, &hgErr) {
		return hgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var hgErr *HttpgraphError
	if errors.As(err, &hgErr) {
		return hgErr.Details
	}
	return nil
}

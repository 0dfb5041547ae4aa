package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for interview operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the requested session does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeFailedPrecondition indicates the session is not in the required status.
	ErrCodeFailedPrecondition ErrorCode = "FAILED_PRECONDITION"
	// ErrCodeUpstreamFailure indicates the language model call failed.
	ErrCodeUpstreamFailure ErrorCode = "UPSTREAM_FAILURE"
	// ErrCodePersistenceFailure indicates a store read or write failed.
	ErrCodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	// ErrCodeLLMUnavailable indicates no LLM service is configured.
	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// InterviewError represents a structured error for interview operations.
type InterviewError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *InterviewError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *InterviewError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *InterviewError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *InterviewError {
	return &InterviewError{Code: ErrCodeInvalidArgument, Message: msg}
}

// InvalidArgumentf creates an invalid argument error with a formatted message.
func InvalidArgumentf(format string, args ...any) *InterviewError {
	return &InterviewError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error for a session.
func NotFound(sessionID string) *InterviewError {
	return &InterviewError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("session not found: %s", sessionID),
	}
}

// FailedPrecondition creates a failed precondition error.
func FailedPrecondition(msg string) *InterviewError {
	return &InterviewError{Code: ErrCodeFailedPrecondition, Message: msg}
}

// FailedPreconditionf creates a failed precondition error with formatting.
func FailedPreconditionf(format string, args ...any) *InterviewError {
	return FailedPrecondition(fmt.Sprintf(format, args...))
}

// UpstreamFailure creates an upstream failure error.
func UpstreamFailure(msg string, cause error) *InterviewError {
	return &InterviewError{Code: ErrCodeUpstreamFailure, Message: msg, Cause: cause}
}

// PersistenceFailure creates a persistence failure error.
func PersistenceFailure(msg string, cause error) *InterviewError {
	return &InterviewError{Code: ErrCodePersistenceFailure, Message: msg, Cause: cause}
}

// LLMUnavailable creates an LLM unavailable error.
func LLMUnavailable(msg string) *InterviewError {
	return &InterviewError{Code: ErrCodeLLMUnavailable, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *InterviewError {
	return &InterviewError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// Wrap wraps an existing error with additional context.
func Wrap(cause error, code ErrorCode, msg string) *InterviewError {
	return &InterviewError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if ierr, ok := err.(*InterviewError); ok {
		return ierr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an InterviewError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if ierr, ok := err.(*InterviewError); ok {
		return ierr.Code
	}
	return defaultCode
}

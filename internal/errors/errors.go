package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeExternalService   = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeStageUnavailable  = "STAGE_UNAVAILABLE"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeSchemaValidation  = "SCHEMA_VALIDATION"
	CodeScoreExtraction   = "SCORE_EXTRACTION"
	CodeStageFailed       = "STAGE_FAILED"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// StageUnavailable reports that a pipeline stage's backing model or service
// is not configured or reachable before any work starts.
func StageUnavailable(stage string) *AppError {
	return New(CodeStageUnavailable, fmt.Sprintf("%s stage unavailable", stage))
}

// snippetLimit bounds how much raw model output a MalformedResponse carries.
const snippetLimit = 500

// MalformedResponse reports model output that could not be parsed as JSON.
// The message carries a bounded snippet of the raw text for diagnosis.
func MalformedResponse(raw string, cause error) *AppError {
	snippet := raw
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit]
	}
	return &AppError{
		Code:    CodeMalformedResponse,
		Message: fmt.Sprintf("model response is not valid JSON: %q", snippet),
		Cause:   cause,
	}
}

// StageFailed marks an error with the pipeline stage that produced it.
func StageFailed(stage string, cause error) *AppError {
	return &AppError{
		Code:    CodeStageFailed,
		Message: fmt.Sprintf("%s stage failed", stage),
		Cause:   cause,
	}
}

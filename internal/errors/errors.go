package errors

import (
	"errors"
	"fmt"
)

// Error codes for the failure taxonomy. Dataset and generation errors
// abort the current request; everything else is repaired locally and
// never surfaces as an error.
const (
	CodeDataset    = "DATASET_ERROR"
	CodeGeneration = "GENERATION_FAILURE"
	CodeInternal   = "INTERNAL_ERROR"
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

// Wrap wraps an error with additional context, preserving the code of
// an existing AppError cause.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternal,
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

// DatasetError marks a malformed or unparseable input table.
func DatasetError(message string, cause error) *AppError {
	return &AppError{Code: CodeDataset, Message: message, Cause: cause}
}

// GenerationFailure marks an external generation service failure.
func GenerationFailure(message string, cause error) *AppError {
	return &AppError{Code: CodeGeneration, Message: message, Cause: cause}
}

// CodeOf extracts the error code, or CodeInternal for plain errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsGenerationFailure reports whether err carries the generation code.
func IsGenerationFailure(err error) bool {
	return CodeOf(err) == CodeGeneration
}

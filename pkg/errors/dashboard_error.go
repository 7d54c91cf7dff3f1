package custom_error

import (
	"errors"
	"fmt"
)

const (
	CodeRequestError    = "REQUEST_ERROR"
	CodeBackendRejected = "BACKEND_REJECTED"
	CodeValidation      = "VALIDATION_ERROR"
)

type CustomError interface {
	Error() string
	Code() string
}

// RequestError covers transport failures and non-2xx answers from the backend.
type RequestError struct {
	message string
	cause   error
}

// BackendError is a business rejection ({"success": false}) reported by the backend.
type BackendError struct {
	message string
}

// ValidationError is raised before any network call is made.
type ValidationError struct {
	field   string
	message string
}

func NewRequestError(message string, cause error) *RequestError {
	return &RequestError{message: message, cause: cause}
}

func NewBackendError(message string) *BackendError {
	if message == "" {
		message = "Backend rejected the request"
	}
	return &BackendError{message: message}
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{field: field, message: message}
}

func (e *RequestError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *RequestError) Message() string { return e.message }
func (e *RequestError) Code() string    { return CodeRequestError }
func (e *RequestError) Unwrap() error   { return e.cause }

func (e *BackendError) Error() string   { return e.message }
func (e *BackendError) Message() string { return e.message }
func (e *BackendError) Code() string    { return CodeBackendRejected }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

func (e *ValidationError) Field() string   { return e.field }
func (e *ValidationError) Message() string { return e.message }
func (e *ValidationError) Code() string    { return CodeValidation }

// UserMessage returns the text that should be shown to the operator for err.
func UserMessage(err error) string {
	var reqErr *RequestError
	var backendErr *BackendError
	var validationErr *ValidationError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.message
	case errors.As(err, &backendErr):
		return backendErr.message
	case errors.As(err, &reqErr):
		return reqErr.message
	case err != nil:
		return err.Error()
	default:
		return ""
	}
}

func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

func IsBackendRejection(err error) bool {
	var backendErr *BackendError
	return errors.As(err, &backendErr)
}

func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

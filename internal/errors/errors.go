// Package errors defines the typed error taxonomy shared by the domain
// services and the API surface.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is a machine-readable error classification.
type ErrorCode string

const (
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeBadUserInput    ErrorCode = "BAD_USER_INPUT"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// ServiceError is an error recovered at the operation boundary and translated
// into a typed code plus a human-readable message.
type ServiceError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	cause      error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.cause }

// WithDetails attaches a key/value pair to the error for diagnostics.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Extensions exposes the error code (and any details) to the GraphQL
// formatter, which looks for this method via interface assertion.
func (e *ServiceError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Code)}
	for k, v := range e.Details {
		ext[k] = v
	}
	return ext
}

// Unauthenticated indicates a missing or unusable identity.
func Unauthenticated(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeUnauthenticated,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken indicates a token that failed verification. Callers are
// expected to treat it as "no identity", not as a hard failure.
func InvalidToken(cause error) *ServiceError {
	return &ServiceError{
		Code:       CodeUnauthenticated,
		Message:    "invalid or expired token",
		HTTPStatus: http.StatusUnauthorized,
		cause:      cause,
	}
}

// Conflict indicates a uniqueness constraint would be violated.
func Conflict(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NotFound indicates a record that is absent or owned by someone else. The
// two cases are deliberately indistinguishable.
func NotFound(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// BadUserInput indicates malformed structured input, e.g. a period selector
// that does not parse.
func BadUserInput(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeBadUserInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation indicates a field-constraint violation. It surfaces with the
// same API code as BadUserInput but names the offending field.
func Validation(field, message string) *ServiceError {
	e := &ServiceError{
		Code:       CodeBadUserInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
	return e.WithDetails("field", field)
}

// Internal wraps an unexpected infrastructure failure.
func Internal(message string, cause error) *ServiceError {
	return &ServiceError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}

// GetServiceError returns the ServiceError in err's chain, or nil.
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	se := GetServiceError(err)
	return se != nil && se.Code == code
}

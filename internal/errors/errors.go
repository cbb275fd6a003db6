package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinels every portal error is marked with. The mark decides the HTTP
// status and the machine readable code of the response.
var (
	ErrNotFound      = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation    = new(ErrCodeValidation, "validation error")
	ErrHTTPClient    = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase      = new(ErrCodeDatabase, "database error")
	ErrSystem        = new(ErrCodeSystemError, "system error")
	// ErrConfiguration is raised when required business configuration is
	// missing, e.g. a client without a service rate
	ErrConfiguration = new(ErrCodeConfiguration, "configuration error")
	// ErrInvalidConfiguration is raised when configuration is present but
	// unusable, e.g. a billing day outside 1..31
	ErrInvalidConfiguration = new(ErrCodeInvalidConfiguration, "invalid configuration")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:    http.StatusInternalServerError,
		ErrDatabase:      http.StatusInternalServerError,
		ErrNotFound:      http.StatusNotFound,
		ErrAlreadyExists: http.StatusConflict,
		ErrValidation:    http.StatusBadRequest,
		ErrSystem:        http.StatusInternalServerError,

		ErrConfiguration:        http.StatusUnprocessableEntity,
		ErrInvalidConfiguration: http.StatusUnprocessableEntity,
	}
)

const (
	ErrCodeHTTPClient    = "http_client_error"
	ErrCodeSystemError   = "system_error"
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"
	ErrCodeValidation    = "validation_error"
	ErrCodeDatabase      = "database_error"

	ErrCodeConfiguration        = "configuration_error"
	ErrCodeInvalidConfiguration = "invalid_configuration"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfiguration checks if an error is a missing configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInvalidConfiguration checks if an error is an invalid configuration error
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// CodeFromErr returns the machine readable code of the sentinel err is marked with
func CodeFromErr(err error) string {
	for e := range statusCodeMap {
		if errors.Is(err, e) {
			return e.(*InternalError).Code
		}
	}
	return ErrCodeSystemError
}

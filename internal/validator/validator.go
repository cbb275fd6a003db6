package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
	ierr "github.com/opsdesk/portal/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// NewValidator builds the shared validator. Repeated calls return the same instance.
func NewValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

func GetValidator() *validator.Validate {
	return validate
}

// ValidateRequest runs struct tag validation and maps failures to ErrValidation
// with one reportable detail per offending field.
func ValidateRequest(req interface{}) error {
	if err := NewValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

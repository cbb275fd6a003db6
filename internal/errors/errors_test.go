package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderMergesDetails(t *testing.T) {
	err := NewError("billing day out of range").
		WithHint("Billing day must be between 1 and 31").
		WithReportableDetails(map[string]any{"billing_day": 40}).
		WithReportableDetails(map[string]any{"client_id": "client_1"}).
		Mark(ErrInvalidConfiguration)

	assert.True(t, IsInvalidConfiguration(err))
	assert.False(t, IsValidation(err))

	resp := NewErrorResponse(err)
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeInvalidConfiguration, resp.Error.Code)
	assert.Equal(t, "Billing day must be between 1 and 31", resp.Error.Display)
	assert.Equal(t, map[string]any{"billing_day": float64(40), "client_id": "client_1"}, resp.Error.Details)
}

func TestErrorResponseWithoutHint(t *testing.T) {
	resp := NewErrorResponse(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeSystemError, resp.Error.Code)
	assert.Equal(t, defaultDisplayMessage, resp.Error.Display)
	assert.Nil(t, resp.Error.Details)
}

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewError("x").Mark(ErrNotFound), http.StatusNotFound},
		{"validation", NewError("x").Mark(ErrValidation), http.StatusBadRequest},
		{"already exists", NewError("x").Mark(ErrAlreadyExists), http.StatusConflict},
		{"missing configuration", NewError("x").Mark(ErrConfiguration), http.StatusUnprocessableEntity},
		{"invalid configuration", NewError("x").Mark(ErrInvalidConfiguration), http.StatusUnprocessableEntity},
		{"database", WithError(fmt.Errorf("conn reset")).WithMessage("insert").Mark(ErrDatabase), http.StatusInternalServerError},
		{"unmarked", fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

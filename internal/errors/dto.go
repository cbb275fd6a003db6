package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	safeDetailsPrefix = "__json__:"

	defaultDisplayMessage = "An unexpected error occurred"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string         `json:"code"`
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for the caller. Only hints and reportable
// details leave the process; the internal message is never exposed.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    CodeFromErr(err),
			Display: DisplayMessage(err),
			Details: ReportableDetails(err),
		},
	}
}

// DisplayMessage returns the innermost non-empty hint of err
func DisplayMessage(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return defaultDisplayMessage
}

// ReportableDetails collects every detail map attached through the builder
func ReportableDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, safeDetailsPrefix)
			if !ok {
				continue
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
				continue
			}
			for k, v := range m {
				details[k] = v
			}
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

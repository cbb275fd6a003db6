package types

import (
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus tracks an invoice from being sent to being settled
type InvoiceStatus string

const (
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusDisputed  InvoiceStatus = "disputed"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusDisputed,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceFilter represents filters for invoice queries
type InvoiceFilter struct {
	*QueryFilter
	ClientID string `json:"client_id,omitempty" form:"client_id" validate:"omitempty"`
	// Year filters on the year of the sent on date
	Year     int    `json:"year,omitempty" form:"year" validate:"omitempty,min=2000,max=2100"`
	Currency string `json:"currency,omitempty" form:"currency" validate:"omitempty,oneof=INR USD"`
}

// NewInvoiceFilter creates a new InvoiceFilter with default values
func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitInvoiceFilter creates a new InvoiceFilter with no pagination limits
func NewNoLimitInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f InvoiceFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.Currency != "" && f.Currency != CurrencyINR && f.Currency != CurrencyUSD {
		return ierr.NewError("invalid currency").
			WithHint("Currency must be INR or USD").
			Mark(ierr.ErrValidation)
	}
	return nil
}

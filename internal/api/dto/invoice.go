package dto

import (
	"github.com/opsdesk/portal/internal/domain/invoice"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest raises an invoice for the current billing computation
// of a client, or of one project when ProjectID is set.
type CreateInvoiceRequest struct {
	ClientID   string  `json:"client_id" validate:"required"`
	ProjectID  *string `json:"project_id"`
	MonthsBack *int    `json:"months_back" validate:"omitempty,min=0"`
	// SentOn defaults to today
	SentOn *types.Date `json:"sent_on"`
	DueOn  *types.Date `json:"due_on"`
	// InvoiceNumber overrides the generated number
	InvoiceNumber string `json:"invoice_number" validate:"omitempty,max=50"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type InvoiceResponse struct {
	*invoice.Invoice
	AmountInINR decimal.Decimal `json:"amount_in_inr"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		Invoice:     inv,
		AmountInINR: inv.AmountInINR(),
	}
}

type NextInvoiceNumberResponse struct {
	ClientID      string `json:"client_id"`
	InvoiceNumber string `json:"invoice_number"`
}

// InvoiceReportRequest filters the yearly invoice report
type InvoiceReportRequest struct {
	Year     int    `json:"year" form:"year" validate:"required,min=2000,max=2100"`
	ClientID string `json:"client_id" form:"client_id"`
	Currency string `json:"currency" form:"currency" validate:"omitempty,oneof=INR USD"`
}

func (r *InvoiceReportRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *InvoiceReportRequest) ToFilter() *types.InvoiceFilter {
	f := types.NewNoLimitInvoiceFilter()
	f.Year = r.Year
	f.ClientID = r.ClientID
	f.Currency = r.Currency
	f.Order = lo.ToPtr(types.OrderAsc)
	return f
}

// InvoiceReportTotals sums a report. The INR total only covers foreign
// currency invoices and the conversion columns are averages.
type InvoiceReportTotals struct {
	Amount                    decimal.Decimal `json:"amount"`
	GST                       decimal.Decimal `json:"gst"`
	TDS                       decimal.Decimal `json:"tds"`
	AmountInINR               decimal.Decimal `json:"amount_in_inr"`
	AmountPaid                decimal.Decimal `json:"amount_paid"`
	BankCharges               decimal.Decimal `json:"bank_charges"`
	AverageConversionRate     decimal.Decimal `json:"average_conversion_rate"`
	AverageConversionRateDiff decimal.Decimal `json:"average_conversion_rate_diff"`
}

type InvoiceReportResponse struct {
	Year     int                 `json:"year"`
	Currency string              `json:"currency,omitempty"`
	Invoices []*InvoiceResponse  `json:"invoices"`
	Totals   InvoiceReportTotals `json:"totals"`
}

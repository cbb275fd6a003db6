package invoice

import (
	"github.com/opsdesk/portal/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is an invoice sent to a client, either for all of its client level
// projects or for one project billed on its own.
type Invoice struct {
	ID            string  `db:"id" json:"id"`
	ClientID      string  `db:"client_id" json:"client_id"`
	ProjectID     *string `db:"project_id" json:"project_id"`
	InvoiceNumber string  `db:"invoice_number" json:"invoice_number"`
	Currency      string  `db:"currency" json:"currency"`

	Amount      decimal.Decimal `db:"amount" json:"amount"`
	GST         decimal.Decimal `db:"gst" json:"gst"`
	TDS         decimal.Decimal `db:"tds" json:"tds"`
	AmountPaid  decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	BankCharges decimal.Decimal `db:"bank_charges" json:"bank_charges"`

	// ConversionRate is the INR value of one unit of Currency when the payment arrived
	ConversionRate decimal.Decimal `db:"conversion_rate" json:"conversion_rate"`
	// ConversionRateDiff is the loss or gain against the rate the invoice was raised at
	ConversionRateDiff decimal.Decimal `db:"conversion_rate_diff" json:"conversion_rate_diff"`

	PeriodStart types.Date  `db:"period_start" json:"period_start"`
	PeriodEnd   types.Date  `db:"period_end" json:"period_end"`
	SentOn      types.Date  `db:"sent_on" json:"sent_on"`
	DueOn       *types.Date `db:"due_on" json:"due_on"`
	PaymentAt   *types.Date `db:"payment_at" json:"payment_at"`

	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`

	types.BaseModel
}

// IsProjectLevel reports whether the invoice bills a single project
func (i *Invoice) IsProjectLevel() bool {
	return i.ProjectID != nil && *i.ProjectID != ""
}

// AmountInINR converts the invoice amount to rupees. INR invoices are returned as is.
func (i *Invoice) AmountInINR() decimal.Decimal {
	if i.Currency == types.CurrencyINR {
		return i.Amount
	}
	return i.Amount.Mul(i.ConversionRate).Round(2)
}

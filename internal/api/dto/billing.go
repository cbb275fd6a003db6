package dto

import (
	"github.com/opsdesk/portal/internal/domain/billing"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
	"github.com/shopspring/decimal"
)

// GetClientBillingRequest selects the term and scope of a billing computation
type GetClientBillingRequest struct {
	// MonthsBack selects an earlier term; the configured default applies when nil
	MonthsBack *int `json:"months_back" form:"months_back" validate:"omitempty,min=0"`
	// ProjectID bills a single project instead of the client level projects
	ProjectID string `json:"project_id" form:"project_id"`
}

func (r *GetClientBillingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ClientBillingResponse struct {
	ClientID    string               `json:"client_id"`
	ProjectID   string               `json:"project_id,omitempty"`
	Currency    string               `json:"currency"`
	IsDomestic  bool                 `json:"is_domestic"`
	StartDate   types.Date           `json:"start_date"`
	EndDate     types.Date           `json:"end_date"`
	WorkingDays int                  `json:"working_days"`
	ServiceRate decimal.Decimal      `json:"service_rate"`
	Lines       []billing.LineAmount `json:"lines"`
	TotalHours  decimal.Decimal      `json:"total_hours"`
	BaseAmount  decimal.Decimal      `json:"base_amount"`
	TaxAmount   decimal.Decimal      `json:"tax_amount"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
}

// ResolvePeriodRequest is the input of a standalone period lookup
type ResolvePeriodRequest struct {
	Reference  types.Date `json:"reference" form:"reference"`
	BillingDay *int       `json:"billing_day" form:"billing_day"`
	// MonthsBack defaults to the configured billing default when nil
	MonthsBack *int `json:"months_back" form:"months_back" validate:"omitempty,min=0"`
}

func (r *ResolvePeriodRequest) Validate() error {
	return validator.ValidateRequest(r)
}

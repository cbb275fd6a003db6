package billing

import (
	"github.com/opsdesk/portal/internal/config"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/shopspring/decimal"
)

// DefaultRoundingPlaces is the precision of every billed amount
const DefaultRoundingPlaces int32 = 2

// Config carries the calculator inputs that are not per client
type Config struct {
	// TaxRate is the domestic tax rate as a fraction (0.18 for 18%)
	TaxRate decimal.Decimal
	// RoundingPlaces is the precision each project amount and the tax are rounded to
	RoundingPlaces int32
}

// DefaultConfig is an 18% domestic tax rate rounded to paise/cents
func DefaultConfig() Config {
	return Config{
		TaxRate:        decimal.NewFromFloat(0.18),
		RoundingPlaces: DefaultRoundingPlaces,
	}
}

// ConfigFrom builds a calculator config from the billing section of the app config
func ConfigFrom(cfg config.BillingConfig) (Config, error) {
	rate, err := cfg.TaxRateDecimal()
	if err != nil {
		return Config{}, ierr.WithError(err).
			WithHintf("Billing tax rate %q is not a number", cfg.TaxRate).
			Mark(ierr.ErrInvalidConfiguration)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Config{}, ierr.NewError("tax rate out of range").
			WithHintf("Billing tax rate must be a fraction between 0 and 1, got %s", rate).
			Mark(ierr.ErrInvalidConfiguration)
	}
	return Config{TaxRate: rate, RoundingPlaces: cfg.RoundingPlaces}, nil
}

// ProjectHours is the billable effort of one project inside a period
type ProjectHours struct {
	ProjectID string
	Name      string
	Hours     decimal.Decimal
}

// LineAmount is the rounded amount billed for a single project
type LineAmount struct {
	ProjectID string          `json:"project_id"`
	Name      string          `json:"name"`
	Hours     decimal.Decimal `json:"hours"`
	Amount    decimal.Decimal `json:"amount"`
}

// Summary is the full computation for one client and period
type Summary struct {
	Lines      []LineAmount    `json:"lines"`
	TotalHours decimal.Decimal `json:"total_hours"`
	BaseAmount decimal.Decimal `json:"base_amount"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total_amount"`
}

// Calculator computes billable, tax and payable amounts. It holds no state
// besides its configuration and is safe for concurrent use.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Config() Config {
	return c.cfg
}

// ComputeBillable rounds hours*rate per project and sums the rounded values.
// A nil rate means the client has no service rate configured.
func (c *Calculator) ComputeBillable(projects []ProjectHours, rate *decimal.Decimal) (decimal.Decimal, error) {
	lines, err := c.lineAmounts(projects, rate)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total, nil
}

// ComputeTax returns round(base*taxRate) for domestic clients and zero otherwise
func (c *Calculator) ComputeTax(base decimal.Decimal, isDomestic bool, taxRate decimal.Decimal) decimal.Decimal {
	if !isDomestic {
		return decimal.Zero
	}
	return base.Mul(taxRate).Round(c.cfg.RoundingPlaces)
}

// ComputeTotalPayable adds the already rounded components
func (c *Calculator) ComputeTotalPayable(base, tax decimal.Decimal) decimal.Decimal {
	return base.Add(tax)
}

// Compute runs the three steps with the configured tax rate
func (c *Calculator) Compute(projects []ProjectHours, rate *decimal.Decimal, isDomestic bool) (*Summary, error) {
	lines, err := c.lineAmounts(projects, rate)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Lines:      lines,
		TotalHours: decimal.Zero,
		BaseAmount: decimal.Zero,
	}
	for _, l := range lines {
		summary.TotalHours = summary.TotalHours.Add(l.Hours)
		summary.BaseAmount = summary.BaseAmount.Add(l.Amount)
	}
	summary.TaxAmount = c.ComputeTax(summary.BaseAmount, isDomestic, c.cfg.TaxRate)
	summary.Total = c.ComputeTotalPayable(summary.BaseAmount, summary.TaxAmount)
	return summary, nil
}

func (c *Calculator) lineAmounts(projects []ProjectHours, rate *decimal.Decimal) ([]LineAmount, error) {
	if rate == nil {
		return nil, ierr.NewError("service rate not configured").
			WithHint("The client has no service rate; set one in the billing details before billing").
			Mark(ierr.ErrConfiguration)
	}
	if rate.IsNegative() {
		return nil, ierr.NewError("negative service rate").
			WithHintf("Service rate cannot be negative, got %s", rate.String()).
			Mark(ierr.ErrInvalidConfiguration)
	}

	lines := make([]LineAmount, 0, len(projects))
	for _, p := range projects {
		lines = append(lines, LineAmount{
			ProjectID: p.ProjectID,
			Name:      p.Name,
			Hours:     p.Hours,
			Amount:    p.Hours.Mul(*rate).Round(c.cfg.RoundingPlaces),
		})
	}
	return lines, nil
}

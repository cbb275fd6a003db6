package salary

import (
	"time"

	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
	"github.com/shopspring/decimal"
)

// Configuration slugs as stored in salary_configurations
const (
	SlugBasicSalary           = "basic_salary"
	SlugHRA                   = "hra"
	SlugEmployeeEPF           = "employee_epf"
	SlugEmployerEPF           = "employer_epf"
	SlugEmployeeESI           = "employee_esi"
	SlugEmployerESI           = "employer_esi"
	SlugESILimit              = "esi_limit"
	SlugEDLICharges           = "edli_charges"
	SlugEDLIChargesLimit      = "edli_charges_limit"
	SlugAdministrationCharges = "administration_charges"
	SlugMedicalAllowance      = "medical_allowance"
	SlugTransportAllowance    = "transport_allowance"
	SlugFoodAllowance         = "food_allowance"
)

// ConfigurationEntry is one row of salary configuration. Exactly one of
// FixedAmount and Percentage is set.
type ConfigurationEntry struct {
	Slug        string           `db:"slug" json:"slug"`
	Label       string           `db:"label" json:"label"`
	FixedAmount *decimal.Decimal `db:"fixed_amount" json:"fixed_amount,omitempty"`
	Percentage  *decimal.Decimal `db:"percentage" json:"percentage,omitempty"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// Configuration holds the company wide salary rules. Percentages are stored
// as percent values (12 for 12%).
type Configuration struct {
	BasicSalaryPercentage decimal.Decimal `json:"basic_salary_percentage"`
	HRAPercentage         decimal.Decimal `json:"hra_percentage"`
	EmployeeEPFPercentage decimal.Decimal `json:"employee_epf_percentage"`
	EmployerEPFPercentage decimal.Decimal `json:"employer_epf_percentage"`
	EmployeeESIPercentage decimal.Decimal `json:"employee_esi_percentage"`
	EmployerESIPercentage decimal.Decimal `json:"employer_esi_percentage"`
	ESILimit              decimal.Decimal `json:"esi_limit"`
	EDLIChargesPercentage decimal.Decimal `json:"edli_charges_percentage"`
	EDLIChargesLimit      decimal.Decimal `json:"edli_charges_limit"`
	AdministrationCharges decimal.Decimal `json:"administration_charges_percentage"`
	MedicalAllowance      decimal.Decimal `json:"medical_allowance"`
	TransportAllowance    decimal.Decimal `json:"transport_allowance"`
	FoodAllowance         decimal.Decimal `json:"food_allowance"`
}

// NewConfiguration assembles a Configuration from stored entries. Every slug
// must be present with the right kind of value.
func NewConfiguration(entries []*ConfigurationEntry) (*Configuration, error) {
	bySlug := make(map[string]*ConfigurationEntry, len(entries))
	for _, e := range entries {
		bySlug[e.Slug] = e
	}

	var missing []string
	pct := func(slug string) decimal.Decimal {
		e, ok := bySlug[slug]
		if !ok || e.Percentage == nil {
			missing = append(missing, slug)
			return decimal.Zero
		}
		return *e.Percentage
	}
	fixed := func(slug string) decimal.Decimal {
		e, ok := bySlug[slug]
		if !ok || e.FixedAmount == nil {
			missing = append(missing, slug)
			return decimal.Zero
		}
		return *e.FixedAmount
	}

	cfg := &Configuration{
		BasicSalaryPercentage: pct(SlugBasicSalary),
		HRAPercentage:         pct(SlugHRA),
		EmployeeEPFPercentage: pct(SlugEmployeeEPF),
		EmployerEPFPercentage: pct(SlugEmployerEPF),
		EmployeeESIPercentage: pct(SlugEmployeeESI),
		EmployerESIPercentage: pct(SlugEmployerESI),
		ESILimit:              fixed(SlugESILimit),
		EDLIChargesPercentage: pct(SlugEDLICharges),
		EDLIChargesLimit:      fixed(SlugEDLIChargesLimit),
		AdministrationCharges: pct(SlugAdministrationCharges),
		MedicalAllowance:      fixed(SlugMedicalAllowance),
		TransportAllowance:    fixed(SlugTransportAllowance),
		FoodAllowance:         fixed(SlugFoodAllowance),
	}

	if len(missing) > 0 {
		return nil, ierr.NewError("incomplete salary configuration").
			WithHint("Salary configuration is missing required values").
			WithReportableDetails(map[string]any{
				"missing": missing,
			}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	return cfg, nil
}

// EmployeeSalary is the monthly gross salary agreed with an employee
type EmployeeSalary struct {
	ID                 string          `db:"id" json:"id"`
	EmployeeID         string          `db:"employee_id" json:"employee_id"`
	MonthlyGrossSalary decimal.Decimal `db:"monthly_gross_salary" json:"monthly_gross_salary"`

	types.BaseModel
}

package salary

import (
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Breakdown splits a monthly gross salary into its components
type Breakdown struct {
	GrossSalary        decimal.Decimal `json:"gross_salary"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HRA                decimal.Decimal `json:"hra"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	FoodAllowance      decimal.Decimal `json:"food_allowance"`
	SpecialAllowance   decimal.Decimal `json:"special_allowance"`

	EmployeeEPF  decimal.Decimal `json:"employee_epf"`
	EmployerEPF  decimal.Decimal `json:"employer_epf"`
	EmployeeESI  decimal.Decimal `json:"employee_esi"`
	EmployerESI  decimal.Decimal `json:"employer_esi"`
	EDLICharges  decimal.Decimal `json:"edli_charges"`
	AdminCharges decimal.Decimal `json:"administration_charges"`

	TakeHome decimal.Decimal `json:"take_home"`
	CTC      decimal.Decimal `json:"ctc"`
}

func percentOf(amount, percentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(percentage).Div(hundred).Round(2)
}

// Compute derives the salary components of gross under cfg.
// ESI only applies up to the ESI limit and EDLI is charged on basic capped at its limit.
func (cfg *Configuration) Compute(gross decimal.Decimal) (*Breakdown, error) {
	if gross.IsNegative() {
		return nil, ierr.NewError("negative gross salary").
			WithHint("Gross salary cannot be negative").
			Mark(ierr.ErrValidation)
	}

	b := &Breakdown{
		GrossSalary:        gross,
		BasicSalary:        percentOf(gross, cfg.BasicSalaryPercentage),
		MedicalAllowance:   cfg.MedicalAllowance,
		TransportAllowance: cfg.TransportAllowance,
		FoodAllowance:      cfg.FoodAllowance,
		EmployeeESI:        decimal.Zero,
		EmployerESI:        decimal.Zero,
	}
	b.HRA = percentOf(b.BasicSalary, cfg.HRAPercentage)

	b.SpecialAllowance = gross.
		Sub(b.BasicSalary).
		Sub(b.HRA).
		Sub(b.MedicalAllowance).
		Sub(b.TransportAllowance).
		Sub(b.FoodAllowance)
	if b.SpecialAllowance.IsNegative() {
		b.SpecialAllowance = decimal.Zero
	}

	b.EmployeeEPF = percentOf(b.BasicSalary, cfg.EmployeeEPFPercentage)
	b.EmployerEPF = percentOf(b.BasicSalary, cfg.EmployerEPFPercentage)

	if gross.LessThanOrEqual(cfg.ESILimit) {
		b.EmployeeESI = percentOf(gross, cfg.EmployeeESIPercentage)
		b.EmployerESI = percentOf(gross, cfg.EmployerESIPercentage)
	}

	b.EDLICharges = percentOf(decimal.Min(b.BasicSalary, cfg.EDLIChargesLimit), cfg.EDLIChargesPercentage)
	b.AdminCharges = percentOf(b.BasicSalary, cfg.AdministrationCharges)

	b.TakeHome = gross.Sub(b.EmployeeEPF).Sub(b.EmployeeESI)
	b.CTC = gross.
		Add(b.EmployerEPF).
		Add(b.EmployerESI).
		Add(b.EDLICharges).
		Add(b.AdminCharges)

	return b, nil
}

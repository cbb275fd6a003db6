package dto

import (
	"github.com/opsdesk/portal/internal/domain/salary"
	"github.com/opsdesk/portal/internal/validator"
	"github.com/shopspring/decimal"
)

type UpsertEmployeeSalaryRequest struct {
	MonthlyGrossSalary decimal.Decimal `json:"monthly_gross_salary"`
}

func (r *UpsertEmployeeSalaryRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type SalaryConfigurationResponse struct {
	*salary.Configuration
	Entries []*salary.ConfigurationEntry `json:"entries"`
}

type EmployeeSalaryResponse struct {
	*salary.EmployeeSalary
	Breakdown *salary.Breakdown `json:"breakdown"`
}

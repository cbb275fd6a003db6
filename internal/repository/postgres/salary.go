package postgres

import (
	"context"

	"github.com/opsdesk/portal/internal/domain/salary"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
)

type salaryRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSalaryRepository(db *postgres.DB, logger *logger.Logger) salary.Repository {
	return &salaryRepository{db: db, logger: logger}
}

func (r *salaryRepository) ListConfiguration(ctx context.Context) ([]*salary.ConfigurationEntry, error) {
	query := `SELECT slug, label, fixed_amount, percentage, updated_at FROM salary_configurations ORDER BY slug`

	var entries []*salary.ConfigurationEntry
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &entries, query); err != nil {
		return nil, wrapErr(err, "salary configuration", "")
	}
	return entries, nil
}

func (r *salaryRepository) UpsertEmployeeSalary(ctx context.Context, s *salary.EmployeeSalary) error {
	query := `
		INSERT INTO employee_salaries (
			id, employee_id, monthly_gross_salary, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :employee_id, :monthly_gross_salary, :status, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (employee_id) DO UPDATE SET
			monthly_gross_salary = EXCLUDED.monthly_gross_salary,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	r.logger.Debugw("storing employee salary", "employee_id", s.EmployeeID)

	_, err := r.db.NamedExecContext(ctx, query, s)
	return wrapErr(err, "employee salary", s.EmployeeID)
}

func (r *salaryRepository) GetEmployeeSalary(ctx context.Context, employeeID string) (*salary.EmployeeSalary, error) {
	var s salary.EmployeeSalary
	query := `
		SELECT id, employee_id, monthly_gross_salary, status, created_at, updated_at, created_by, updated_by
		FROM employee_salaries WHERE employee_id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, employeeID); err != nil {
		return nil, wrapErr(err, "employee salary", employeeID)
	}
	return &s, nil
}

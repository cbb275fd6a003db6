package salary

import "context"

// Repository defines the interface for salary data access
type Repository interface {
	ListConfiguration(ctx context.Context) ([]*ConfigurationEntry, error)
	UpsertEmployeeSalary(ctx context.Context, salary *EmployeeSalary) error
	// GetEmployeeSalary returns ErrNotFound when no salary was stored for the employee
	GetEmployeeSalary(ctx context.Context, employeeID string) (*EmployeeSalary, error)
}

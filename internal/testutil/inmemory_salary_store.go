package testutil

import (
	"context"
	"sync"

	"github.com/opsdesk/portal/internal/domain/salary"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemorySalaryStore implements salary.Repository. It starts with the same
// configuration the migrations seed.
type InMemorySalaryStore struct {
	mu        sync.RWMutex
	entries   []*salary.ConfigurationEntry
	salaries  map[string]*salary.EmployeeSalary
	listCalls int
}

func NewInMemorySalaryStore() *InMemorySalaryStore {
	return &InMemorySalaryStore{
		entries:  DefaultSalaryConfiguration(),
		salaries: make(map[string]*salary.EmployeeSalary),
	}
}

// DefaultSalaryConfiguration returns the seeded salary configuration rows
func DefaultSalaryConfiguration() []*salary.ConfigurationEntry {
	pct := func(slug, v string) *salary.ConfigurationEntry {
		return &salary.ConfigurationEntry{Slug: slug, Percentage: lo.ToPtr(decimal.RequireFromString(v))}
	}
	fixed := func(slug, v string) *salary.ConfigurationEntry {
		return &salary.ConfigurationEntry{Slug: slug, FixedAmount: lo.ToPtr(decimal.RequireFromString(v))}
	}
	return []*salary.ConfigurationEntry{
		pct(salary.SlugBasicSalary, "50"),
		pct(salary.SlugHRA, "40"),
		pct(salary.SlugEmployeeEPF, "12"),
		pct(salary.SlugEmployerEPF, "12"),
		pct(salary.SlugEmployeeESI, "0.75"),
		pct(salary.SlugEmployerESI, "3.25"),
		fixed(salary.SlugESILimit, "21000"),
		pct(salary.SlugEDLICharges, "0.5"),
		fixed(salary.SlugEDLIChargesLimit, "15000"),
		pct(salary.SlugAdministrationCharges, "0.5"),
		fixed(salary.SlugMedicalAllowance, "1250"),
		fixed(salary.SlugTransportAllowance, "1600"),
		fixed(salary.SlugFoodAllowance, "2200"),
	}
}

// SetConfiguration replaces the configuration rows
func (s *InMemorySalaryStore) SetConfiguration(entries []*salary.ConfigurationEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// ListCalls reports how often the configuration was read
func (s *InMemorySalaryStore) ListCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listCalls
}

func (s *InMemorySalaryStore) ListConfiguration(ctx context.Context) ([]*salary.ConfigurationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return lo.Map(s.entries, func(e *salary.ConfigurationEntry, _ int) *salary.ConfigurationEntry {
		cp := *e
		return &cp
	}), nil
}

func (s *InMemorySalaryStore) UpsertEmployeeSalary(ctx context.Context, es *salary.EmployeeSalary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *es
	if existing, ok := s.salaries[es.EmployeeID]; ok {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
		cp.CreatedBy = existing.CreatedBy
	}
	s.salaries[es.EmployeeID] = &cp
	return nil
}

func (s *InMemorySalaryStore) GetEmployeeSalary(ctx context.Context, employeeID string) (*salary.EmployeeSalary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	es, ok := s.salaries[employeeID]
	if !ok {
		return nil, ierr.NewError("salary not found").
			WithHint("No salary stored for the employee").
			Mark(ierr.ErrNotFound)
	}
	cp := *es
	return &cp, nil
}

// Clear drops stored salaries and restores the default configuration
func (s *InMemorySalaryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = DefaultSalaryConfiguration()
	s.salaries = make(map[string]*salary.EmployeeSalary)
	s.listCalls = 0
}

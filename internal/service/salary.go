package service

import (
	"context"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/cache"
	"github.com/opsdesk/portal/internal/domain/salary"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/interfaces"
	"github.com/opsdesk/portal/internal/types"
)

type SalaryService = interfaces.SalaryService

type salaryService struct {
	ServiceParams
}

func NewSalaryService(params ServiceParams) SalaryService {
	return &salaryService{
		ServiceParams: params,
	}
}

// cachedSalaryConfiguration keeps the parsed configuration next to the rows it came from
type cachedSalaryConfiguration struct {
	config  *salary.Configuration
	entries []*salary.ConfigurationEntry
}

func (s *salaryService) GetConfiguration(ctx context.Context) (*dto.SalaryConfigurationResponse, error) {
	cached, err := s.loadConfiguration(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SalaryConfigurationResponse{
		Configuration: cached.config,
		Entries:       cached.entries,
	}, nil
}

func (s *salaryService) UpsertEmployeeSalary(ctx context.Context, employeeID string, req dto.UpsertEmployeeSalaryRequest) (*dto.EmployeeSalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !req.MonthlyGrossSalary.IsPositive() {
		return nil, ierr.NewError("gross salary must be positive").
			WithHint("Monthly gross salary must be greater than zero").
			WithReportableDetails(map[string]any{
				"monthly_gross_salary": req.MonthlyGrossSalary.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if _, err := s.UserRepo.Get(ctx, employeeID); err != nil {
		return nil, err
	}

	cached, err := s.loadConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	es := &salary.EmployeeSalary{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EMPLOYEE_SALARY),
		EmployeeID:         employeeID,
		MonthlyGrossSalary: req.MonthlyGrossSalary,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	if err := s.SalaryRepo.UpsertEmployeeSalary(ctx, es); err != nil {
		return nil, err
	}

	breakdown, err := cached.config.Compute(es.MonthlyGrossSalary)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("stored employee salary", "employee_id", employeeID)

	return &dto.EmployeeSalaryResponse{
		EmployeeSalary: es,
		Breakdown:      breakdown,
	}, nil
}

func (s *salaryService) GetEmployeeSalary(ctx context.Context, employeeID string) (*dto.EmployeeSalaryResponse, error) {
	es, err := s.SalaryRepo.GetEmployeeSalary(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	cached, err := s.loadConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	breakdown, err := cached.config.Compute(es.MonthlyGrossSalary)
	if err != nil {
		return nil, err
	}

	return &dto.EmployeeSalaryResponse{
		EmployeeSalary: es,
		Breakdown:      breakdown,
	}, nil
}

func (s *salaryService) loadConfiguration(ctx context.Context) (*cachedSalaryConfiguration, error) {
	key := cache.GenerateKey(cache.PrefixSalaryConfiguration, "company")
	if v, found := s.Cache.Get(ctx, key); found {
		if cached, ok := v.(*cachedSalaryConfiguration); ok {
			return cached, nil
		}
	}

	entries, err := s.SalaryRepo.ListConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := salary.NewConfiguration(entries)
	if err != nil {
		s.Logger.Errorw("salary configuration is incomplete", "error", err)
		return nil, err
	}

	cached := &cachedSalaryConfiguration{config: cfg, entries: entries}
	s.Cache.Set(ctx, key, cached, s.Config.Cache.TTL)
	return cached, nil
}

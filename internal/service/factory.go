package service

import (
	"github.com/opsdesk/portal/internal/cache"
	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/domain/invoice"
	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/domain/recruitment"
	"github.com/opsdesk/portal/internal/domain/salary"
	"github.com/opsdesk/portal/internal/domain/user"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/sentry"
	"github.com/opsdesk/portal/internal/sheets"
	"github.com/opsdesk/portal/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache
	Clock  types.Clock
	Sentry *sentry.Service

	// Repositories
	ClientRepo      client.Repository
	ProjectRepo     project.Repository
	TeamMemberRepo  project.TeamMemberRepository
	EffortRepo      project.EffortRepository
	UserRepo        user.Repository
	InvoiceRepo     invoice.Repository
	SalaryRepo      salary.Repository
	RecruitmentRepo recruitment.Repository

	// Effort sheet access
	SheetsReader sheets.Reader
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	clock types.Clock,
	sentry *sentry.Service,
	clientRepo client.Repository,
	projectRepo project.Repository,
	teamMemberRepo project.TeamMemberRepository,
	effortRepo project.EffortRepository,
	userRepo user.Repository,
	invoiceRepo invoice.Repository,
	salaryRepo salary.Repository,
	recruitmentRepo recruitment.Repository,
	sheetsReader sheets.Reader,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		Cache:           cache,
		Clock:           clock,
		Sentry:          sentry,
		ClientRepo:      clientRepo,
		ProjectRepo:     projectRepo,
		TeamMemberRepo:  teamMemberRepo,
		EffortRepo:      effortRepo,
		UserRepo:        userRepo,
		InvoiceRepo:     invoiceRepo,
		SalaryRepo:      salaryRepo,
		RecruitmentRepo: recruitmentRepo,
		SheetsReader:    sheetsReader,
	}
}

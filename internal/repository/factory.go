package repository

import (
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/domain/invoice"
	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/domain/recruitment"
	"github.com/opsdesk/portal/internal/domain/salary"
	"github.com/opsdesk/portal/internal/domain/user"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	postgresRepo "github.com/opsdesk/portal/internal/repository/postgres"
)

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewProjectRepository(db *postgres.DB, logger *logger.Logger) project.Repository {
	return postgresRepo.NewProjectRepository(db, logger)
}

func NewTeamMemberRepository(db *postgres.DB, logger *logger.Logger) project.TeamMemberRepository {
	return postgresRepo.NewTeamMemberRepository(db, logger)
}

func NewEffortRepository(db *postgres.DB, logger *logger.Logger) project.EffortRepository {
	return postgresRepo.NewEffortRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewSalaryRepository(db *postgres.DB, logger *logger.Logger) salary.Repository {
	return postgresRepo.NewSalaryRepository(db, logger)
}

func NewRecruitmentRepository(db *postgres.DB, logger *logger.Logger) recruitment.Repository {
	return postgresRepo.NewRecruitmentRepository(db, logger)
}

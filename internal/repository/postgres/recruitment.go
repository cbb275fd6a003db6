package postgres

import (
	"context"

	"github.com/opsdesk/portal/internal/domain/recruitment"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
)

type recruitmentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRecruitmentRepository(db *postgres.DB, logger *logger.Logger) recruitment.Repository {
	return &recruitmentRepository{db: db, logger: logger}
}

func (r *recruitmentRepository) CountApplicantsOn(ctx context.Context, day types.Date) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM hr_applicants WHERE created_at::date = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, day); err != nil {
		return 0, wrapErr(err, "applicant", "")
	}
	return count, nil
}

func (r *recruitmentRepository) DailyApplicantCounts(ctx context.Context, start, end types.Date) ([]recruitment.DailyCount, error) {
	query := `
		SELECT created_at::date AS day, COUNT(*) AS count
		FROM hr_applicants
		WHERE created_at::date >= $1 AND created_at::date <= $2
		GROUP BY day
		ORDER BY day ASC`

	var counts []recruitment.DailyCount
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &counts, query, start, end); err != nil {
		return nil, wrapErr(err, "applicant", "")
	}
	return counts, nil
}

func (r *recruitmentRepository) CountVerifiedApplications(ctx context.Context, from, to types.Date) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM hr_applications
		WHERE is_verified AND created_at::date >= $1 AND created_at::date <= $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, from, to); err != nil {
		return 0, wrapErr(err, "application", "")
	}
	return count, nil
}

func (r *recruitmentRepository) ApplicationsPerJob(ctx context.Context) ([]recruitment.JobApplications, error) {
	query := `
		SELECT j.id AS job_id, j.title, COUNT(a.id) AS count
		FROM hr_jobs j
		LEFT JOIN hr_applications a ON a.hr_job_id = j.id
		GROUP BY j.id, j.title
		ORDER BY j.title ASC`

	var rows []recruitment.JobApplications
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapErr(err, "job", "")
	}
	return rows, nil
}

func (r *recruitmentRepository) GetJobDomainBySlug(ctx context.Context, slug string) (*recruitment.JobDomain, error) {
	var d recruitment.JobDomain
	query := `SELECT id, domain, slug FROM hr_job_domains WHERE slug = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &d, query, slug); err != nil {
		return nil, wrapErr(err, "job domain", slug)
	}
	return &d, nil
}

package postgres

import (
	"context"

	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
)

type projectRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProjectRepository(db *postgres.DB, logger *logger.Logger) project.Repository {
	return &projectRepository{db: db, logger: logger}
}

const projectColumns = `id, client_id, name, billing_level, effort_sheet_url,
	status, created_at, updated_at, created_by, updated_by`

func (r *projectRepository) Create(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (
			id, client_id, name, billing_level, effort_sheet_url,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :client_id, :name, :billing_level, :effort_sheet_url,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating project", "project_id", p.ID, "client_id", p.ClientID)

	_, err := r.db.NamedExecContext(ctx, query, p)
	return wrapErr(err, "project", p.ID)
}

func (r *projectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND status != $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, id, types.StatusDeleted); err != nil {
		return nil, wrapErr(err, "project", id)
	}
	return &p, nil
}

func (r *projectRepository) GetActiveByName(ctx context.Context, name string) (*project.Project, error) {
	var p project.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE name = $1 AND status = $2 ORDER BY created_at ASC LIMIT 1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, name, types.StatusActive); err != nil {
		return nil, wrapErr(err, "project", name)
	}
	return &p, nil
}

func (r *projectRepository) where(filter *types.ProjectFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter == nil {
		w.status("status", nil)
		return w
	}
	w.status("status", filter.QueryFilter)
	if filter.ClientID != "" {
		w.add("client_id = ?", filter.ClientID)
	}
	if filter.Name != "" {
		w.add("name = ?", filter.Name)
	}
	if filter.BillingLevel != "" {
		w.add("billing_level = ?", string(filter.BillingLevel))
	}
	if filter.WithEffortSheet {
		w.add("COALESCE(effort_sheet_url, '') != ''")
	}
	return w
}

func (r *projectRepository) List(ctx context.Context, filter *types.ProjectFilter) ([]*project.Project, error) {
	w := r.where(filter)
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	query := `SELECT ` + projectColumns + ` FROM projects` + w.sql() + w.page("created_at", qf)

	var projects []*project.Project
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &projects, query, w.args...); err != nil {
		return nil, wrapErr(err, "project", "")
	}
	return projects, nil
}

func (r *projectRepository) Count(ctx context.Context, filter *types.ProjectFilter) (int, error) {
	w := r.where(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM projects`+w.sql(), w.args...); err != nil {
		return 0, wrapErr(err, "project", "")
	}
	return count, nil
}

func (r *projectRepository) Update(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects SET
			name = :name,
			billing_level = :billing_level,
			effort_sheet_url = :effort_sheet_url,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating project", "project_id", p.ID)

	_, err := r.db.NamedExecContext(ctx, query, p)
	return wrapErr(err, "project", p.ID)
}

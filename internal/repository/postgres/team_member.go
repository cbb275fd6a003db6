package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
)

type teamMemberRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTeamMemberRepository(db *postgres.DB, logger *logger.Logger) project.TeamMemberRepository {
	return &teamMemberRepository{db: db, logger: logger}
}

const teamMemberColumns = `id, project_id, user_id, designation, status, created_at, updated_at, created_by, updated_by`

func (r *teamMemberRepository) Create(ctx context.Context, m *project.TeamMember) error {
	query := `
		INSERT INTO project_team_members (
			id, project_id, user_id, designation, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :project_id, :user_id, :designation, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("adding team member", "project_id", m.ProjectID, "user_id", m.UserID)

	_, err := r.db.NamedExecContext(ctx, query, m)
	return wrapErr(err, "team member", m.ID)
}

func (r *teamMemberRepository) ListByProject(ctx context.Context, projectID string) ([]*project.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM project_team_members WHERE project_id = $1 AND status = $2 ORDER BY created_at ASC`

	var members []*project.TeamMember
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &members, query, projectID, types.StatusActive); err != nil {
		return nil, wrapErr(err, "team member", projectID)
	}
	return members, nil
}

func (r *teamMemberRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM project_team_members WHERE project_id = $1 AND status = $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, projectID, types.StatusActive); err != nil {
		return 0, wrapErr(err, "team member", projectID)
	}
	return count, nil
}

func (r *teamMemberRepository) ListByProjects(ctx context.Context, projectIDs []string) ([]*project.TeamMember, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + teamMemberColumns + ` FROM project_team_members WHERE project_id = ANY($1) AND status != $2 ORDER BY created_at ASC`

	var members []*project.TeamMember
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &members, query, pq.Array(projectIDs), types.StatusDeleted); err != nil {
		return nil, wrapErr(err, "team member", "")
	}
	return members, nil
}

func (r *teamMemberRepository) GetActive(ctx context.Context, projectID, userID string) (*project.TeamMember, error) {
	var m project.TeamMember
	query := `SELECT ` + teamMemberColumns + ` FROM project_team_members WHERE project_id = $1 AND user_id = $2 AND status = $3 LIMIT 1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &m, query, projectID, userID, types.StatusActive); err != nil {
		return nil, wrapErr(err, "team member", userID)
	}
	return &m, nil
}

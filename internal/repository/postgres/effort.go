package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
)

type effortRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewEffortRepository(db *postgres.DB, logger *logger.Logger) project.EffortRepository {
	return &effortRepository{db: db, logger: logger}
}

const effortColumns = `id, project_team_member_id, added_on, actual_effort, total_effort_in_effortsheet, created_at, updated_at`

func (r *effortRepository) GetLatestBefore(ctx context.Context, teamMemberID string, date types.Date) (*project.Effort, error) {
	var e project.Effort
	query := `
		SELECT ` + effortColumns + `
		FROM project_team_member_efforts
		WHERE project_team_member_id = $1 AND added_on < $2
		ORDER BY added_on DESC
		LIMIT 1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &e, query, teamMemberID, date); err != nil {
		return nil, wrapErr(err, "effort", teamMemberID)
	}
	return &e, nil
}

func (r *effortRepository) Upsert(ctx context.Context, e *project.Effort) error {
	query := `
		INSERT INTO project_team_member_efforts (
			id, project_team_member_id, added_on, actual_effort, total_effort_in_effortsheet, created_at, updated_at
		) VALUES (
			:id, :project_team_member_id, :added_on, :actual_effort, :total_effort_in_effortsheet, :created_at, :updated_at
		)
		ON CONFLICT (project_team_member_id, added_on) DO UPDATE SET
			actual_effort = EXCLUDED.actual_effort,
			total_effort_in_effortsheet = EXCLUDED.total_effort_in_effortsheet,
			updated_at = EXCLUDED.updated_at`

	r.logger.Debugw("upserting effort",
		"team_member_id", e.TeamMemberID,
		"added_on", e.AddedOn,
		"actual_effort", e.ActualEffort,
	)

	_, err := r.db.NamedExecContext(ctx, query, e)
	return wrapErr(err, "effort", e.TeamMemberID)
}

func (r *effortRepository) ListInRange(ctx context.Context, teamMemberIDs []string, start, end types.Date) ([]*project.Effort, error) {
	if len(teamMemberIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + effortColumns + `
		FROM project_team_member_efforts
		WHERE project_team_member_id = ANY($1) AND added_on >= $2 AND added_on <= $3
		ORDER BY added_on ASC`

	var efforts []*project.Effort
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &efforts, query, pq.Array(teamMemberIDs), start, end); err != nil {
		return nil, wrapErr(err, "effort", "")
	}
	return efforts, nil
}

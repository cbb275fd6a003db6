package dto

import (
	"time"

	"github.com/opsdesk/portal/internal/types"
)

// EffortSheetSyncRequest limits a sync run to one project when ProjectID is set
type EffortSheetSyncRequest struct {
	ProjectID string `json:"project_id" form:"project_id"`
}

// ProjectSyncResult is the outcome of syncing one project
type ProjectSyncResult struct {
	ProjectID     string `json:"project_id"`
	ProjectName   string `json:"project_name"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`
	EffortsSynced int    `json:"efforts_synced"`
	RowsSkipped   int    `json:"rows_skipped"`
	SubProjects   int    `json:"sub_projects"`
	Error         string `json:"error,omitempty"`
}

type EffortSheetSyncResponse struct {
	RunID      string              `json:"run_id"`
	Date       types.Date          `json:"date"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Projects   []ProjectSyncResult `json:"projects"`
	Failed     int                 `json:"failed"`
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/project"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/interfaces"
	"github.com/opsdesk/portal/internal/sheets"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

type EffortSheetSyncService = interfaces.EffortSheetSyncService

type effortSheetSyncService struct {
	ServiceParams
}

func NewEffortSheetSyncService(params ServiceParams) EffortSheetSyncService {
	return &effortSheetSyncService{
		ServiceParams: params,
	}
}

// sheetDateLayouts are the date formats accepted in the start and end columns
var sheetDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2-Jan-2006",
}

// sheetColumn ties a project to the column holding its billable effort
type sheetColumn struct {
	project *project.Project
	index   int
}

// sheetLayout is the column layout of an effort sheet, as indexes into the
// rows read from the start column
type sheetLayout struct {
	name      int
	effort    int
	startDate int
	endDate   int
	lastCol   string
	projects  []sheetColumn
}

// sheetRow is one member row of an effort sheet
type sheetRow struct {
	nickname string
	start    types.Date
	end      types.Date
	cells    []string
}

func (s *effortSheetSyncService) Sync(ctx context.Context, req dto.EffortSheetSyncRequest) (*dto.EffortSheetSyncResponse, error) {
	projects, err := s.projectsToSync(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	span, ctx := s.Sentry.StartTransaction(ctx, "effortsheet.sync")
	if span != nil {
		defer span.Finish()
	}

	resp := &dto.EffortSheetSyncResponse{
		RunID:     types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SYNC_RUN),
		Date:      s.Clock.Today(),
		StartedAt: s.Clock.Now(),
	}

	s.Logger.Infow("starting effort sheet sync",
		"run_id", resp.RunID,
		"projects", len(projects),
	)

	results := make([]dto.ProjectSyncResult, len(projects))
	workers := pool.New().WithMaxGoroutines(max(1, s.Config.EffortSheet.Workers))
	for i, p := range projects {
		workers.Go(func() {
			results[i] = s.syncProject(ctx, p, resp.Date)
		})
	}
	workers.Wait()

	for _, result := range results {
		if result.Error != "" {
			resp.Failed++
		}
	}
	resp.Projects = results

	resp.FinishedAt = s.Clock.Now()
	s.Logger.Infow("finished effort sheet sync",
		"run_id", resp.RunID,
		"projects", len(resp.Projects),
		"failed", resp.Failed,
		"duration", resp.FinishedAt.Sub(resp.StartedAt).String(),
	)
	return resp, nil
}

func (s *effortSheetSyncService) projectsToSync(ctx context.Context, projectID string) ([]*project.Project, error) {
	if projectID != "" {
		p, err := s.ProjectRepo.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if !p.IsActive() || !p.HasEffortSheet() {
			return nil, ierr.NewError("project has no active effort sheet").
				WithHint("Only active projects with an effort sheet can be synced").
				WithReportableDetails(map[string]any{
					"project_id": projectID,
				}).
				Mark(ierr.ErrValidation)
		}
		return []*project.Project{p}, nil
	}

	filter := types.NewNoLimitProjectFilter()
	filter.Status = lo.ToPtr(types.StatusActive)
	filter.WithEffortSheet = true
	filter.Order = lo.ToPtr("asc")
	return s.ProjectRepo.List(ctx, filter)
}

// syncProject imports one project's effort sheet. A failure is recorded on
// the result and never aborts the run.
func (s *effortSheetSyncService) syncProject(ctx context.Context, p *project.Project, today types.Date) dto.ProjectSyncResult {
	result := dto.ProjectSyncResult{
		ProjectID:   p.ID,
		ProjectName: p.Name,
	}

	err := s.importSheet(ctx, p, today, &result)
	if err != nil {
		result.Error = err.Error()
		s.Logger.Errorw("failed to sync effort sheet",
			"project_id", p.ID,
			"project_name", p.Name,
			"spreadsheet_id", result.SpreadsheetID,
			"error", err,
		)
		s.Sentry.CaptureProjectFailure(ctx, p.ID, err)
	}
	return result
}

func (s *effortSheetSyncService) importSheet(ctx context.Context, p *project.Project, today types.Date, result *dto.ProjectSyncResult) error {
	spreadsheetID, err := sheets.ExtractSpreadsheetID(lo.FromPtr(p.EffortSheetURL))
	if err != nil {
		return err
	}
	result.SpreadsheetID = spreadsheetID

	layout, err := s.readLayout(ctx, p, spreadsheetID)
	if err != nil {
		return err
	}
	result.SubProjects = len(layout.projects)
	if len(layout.projects) == 1 && layout.projects[0].project.ID == p.ID {
		result.SubProjects = 0
	}

	membersCount, err := s.TeamMemberRepo.CountByProject(ctx, p.ID)
	if err != nil {
		return err
	}
	if membersCount == 0 {
		s.Logger.Debugw("project has no team members, skipping sheet rows",
			"project_id", p.ID,
		)
		return nil
	}

	cfg := s.Config.EffortSheet
	dataRange := fmt.Sprintf("%s2:%s%d", cfg.DefaultStartColumn, layout.lastCol, membersCount+1)
	rows, err := s.SheetsReader.ReadRange(ctx, spreadsheetID, dataRange)
	if err != nil {
		return err
	}

	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		for _, cells := range rows {
			row, ok := layout.parseRow(cells)
			if !ok || !today.Between(row.start, row.end) {
				result.RowsSkipped++
				continue
			}

			u, err := s.UserRepo.GetByNickname(txCtx, row.nickname)
			if err != nil {
				if ierr.IsNotFound(err) {
					s.Logger.Debugw("no user for effort sheet nickname",
						"project_id", p.ID,
						"nickname", row.nickname,
					)
					result.RowsSkipped++
					continue
				}
				return err
			}

			for _, col := range layout.projects {
				synced, err := s.recordEffort(txCtx, col, u.ID, row, today)
				if err != nil {
					return err
				}
				if synced {
					result.EffortsSynced++
				}
			}
		}
		return nil
	})
}

// recordEffort upserts today's effort of the user on the column's project.
// It reports false when the user is not an active member of the project.
func (s *effortSheetSyncService) recordEffort(ctx context.Context, col sheetColumn, userID string, row sheetRow, today types.Date) (bool, error) {
	member, err := s.TeamMemberRepo.GetActive(ctx, col.project.ID, userID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	total, err := parseSheetEffort(cell(row.cells, col.index))
	if err != nil {
		s.Logger.Warnw("invalid billable effort in effort sheet",
			"project_id", col.project.ID,
			"nickname", row.nickname,
			"value", cell(row.cells, col.index),
		)
		return false, nil
	}

	actual := total
	latest, err := s.EffortRepo.GetLatestBefore(ctx, member.ID, today)
	if err != nil && !ierr.IsNotFound(err) {
		return false, err
	}
	if latest != nil && latest.AddedOn.Between(row.start, row.end) {
		actual = total.Sub(latest.TotalEffort)
	}

	now := s.Clock.Now()
	err = s.EffortRepo.Upsert(ctx, &project.Effort{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EFFORT),
		TeamMemberID: member.ID,
		AddedOn:      today,
		ActualEffort: actual,
		TotalEffort:  total,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// readLayout reads the header row and locates the fixed columns and the
// sub project columns that follow the default end column
func (s *effortSheetSyncService) readLayout(ctx context.Context, p *project.Project, spreadsheetID string) (*sheetLayout, error) {
	cfg := s.Config.EffortSheet
	headerRange := fmt.Sprintf("%s1:%s1", cfg.DefaultStartColumn, cfg.MaxColumn)
	rows, err := s.SheetsReader.ReadRange(ctx, spreadsheetID, headerRange)
	if err != nil {
		return nil, err
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	startIdx := columnIndex(cfg.DefaultStartColumn)
	endIdx := columnIndex(cfg.DefaultEndColumn) - startIdx

	layout := &sheetLayout{lastCol: cfg.DefaultEndColumn}
	missing := make([]string, 0)
	find := func(name string) int {
		i := lo.IndexOf(lo.Map(header, func(h string, _ int) string {
			return strings.ToLower(strings.TrimSpace(h))
		}), strings.ToLower(name))
		if i < 0 {
			missing = append(missing, name)
		}
		return i
	}
	layout.name = find(cfg.Columns.TeamMemberName)
	layout.effort = find(cfg.Columns.BillableEffort)
	layout.startDate = find(cfg.Columns.StartDate)
	layout.endDate = find(cfg.Columns.EndDate)
	if len(missing) > 0 {
		return nil, ierr.NewError("effort sheet header is missing columns").
			WithHintf("The effort sheet is missing the columns: %s", strings.Join(missing, ", ")).
			WithReportableDetails(map[string]any{
				"project_id":     p.ID,
				"spreadsheet_id": spreadsheetID,
				"missing":        missing,
			}).
			Mark(ierr.ErrValidation)
	}

	for i := endIdx + 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if name == "" {
			break
		}
		sub, err := s.ProjectRepo.GetActiveByName(ctx, name)
		if err != nil {
			if ierr.IsNotFound(err) {
				s.Logger.Debugw("unknown sub project in effort sheet",
					"project_id", p.ID,
					"sub_project", name,
				)
				continue
			}
			return nil, err
		}
		layout.projects = append(layout.projects, sheetColumn{project: sub, index: i})
		layout.lastCol = columnName(startIdx + i)
	}

	if len(layout.projects) == 0 {
		layout.projects = []sheetColumn{{project: p, index: layout.effort}}
	}
	return layout, nil
}

func (l *sheetLayout) parseRow(cells []string) (sheetRow, bool) {
	row := sheetRow{
		nickname: strings.TrimSpace(cell(cells, l.name)),
		cells:    cells,
	}
	if row.nickname == "" {
		return row, false
	}
	var ok bool
	if row.start, ok = parseSheetDate(cell(cells, l.startDate)); !ok {
		return row, false
	}
	if row.end, ok = parseSheetDate(cell(cells, l.endDate)); !ok {
		return row, false
	}
	return row, true
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func parseSheetDate(v string) (types.Date, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return types.Date{}, false
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return types.DateOf(t), true
		}
	}
	return types.Date{}, false
}

// parseSheetEffort reads an hours cell; an empty cell is zero hours
func parseSheetEffort(v string) (decimal.Decimal, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

// columnIndex converts a column name to a zero based index, A is 0
func columnIndex(name string) int {
	idx := 0
	for _, r := range strings.ToUpper(name) {
		if r < 'A' || r > 'Z' {
			break
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1
}

// columnName converts a zero based index to a column name
func columnName(idx int) string {
	name := ""
	for idx >= 0 {
		name = string(rune('A'+idx%26)) + name
		idx = idx/26 - 1
	}
	return name
}

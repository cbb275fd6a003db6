package service

import (
	"context"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/project"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/interfaces"
	"github.com/opsdesk/portal/internal/sheets"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

type ProjectService = interfaces.ProjectService

type projectService struct {
	ServiceParams
}

func NewProjectService(params ServiceParams) ProjectService {
	return &projectService{
		ServiceParams: params,
	}
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ClientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}

	if err := validateEffortSheetURL(req.EffortSheetURL); err != nil {
		return nil, err
	}

	p := req.ToProject(ctx)
	if err := s.ProjectRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created project",
		"project_id", p.ID,
		"client_id", p.ClientID,
		"billing_level", p.BillingLevel,
	)

	return &dto.ProjectResponse{Project: p}, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, err := s.ProjectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.TeamMemberRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectResponse{
		Project:     p,
		TeamMembers: members,
	}, nil
}

func (s *projectService) GetProjects(ctx context.Context, filter *types.ProjectFilter) (*dto.ListProjectsResponse, error) {
	if filter == nil {
		filter = types.NewProjectFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation)
	}

	projects, err := s.ProjectRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ProjectRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(projects, func(p *project.Project, _ int) *dto.ProjectResponse {
		return &dto.ProjectResponse{Project: p}
	})

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id string, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := validateEffortSheetURL(req.EffortSheetURL); err != nil {
		return nil, err
	}

	p, err := s.ProjectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(p)
	p.Touch(ctx, s.Clock.Now())

	if err := s.ProjectRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return &dto.ProjectResponse{Project: p}, nil
}

func (s *projectService) AddTeamMember(ctx context.Context, projectID string, req dto.AddTeamMemberRequest) (*dto.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ProjectRepo.Get(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.Get(ctx, req.UserID); err != nil {
		return nil, err
	}

	_, err := s.TeamMemberRepo.GetActive(ctx, projectID, req.UserID)
	if err == nil {
		return nil, ierr.NewError("user already on project").
			WithHint("The user is already an active member of the project").
			WithReportableDetails(map[string]any{
				"project_id": projectID,
				"user_id":    req.UserID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	if err := s.TeamMemberRepo.Create(ctx, req.ToTeamMember(ctx, projectID)); err != nil {
		return nil, err
	}

	return s.GetProject(ctx, projectID)
}

// validateEffortSheetURL rejects links that do not carry a spreadsheet id
func validateEffortSheetURL(url *string) error {
	if url == nil || *url == "" {
		return nil
	}
	_, err := sheets.ExtractSpreadsheetID(*url)
	return err
}

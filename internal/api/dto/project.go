package dto

import (
	"context"

	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
)

type CreateProjectRequest struct {
	ClientID       string             `json:"client_id" validate:"required"`
	Name           string             `json:"name" validate:"required,max=255"`
	BillingLevel   types.BillingLevel `json:"billing_level"`
	EffortSheetURL *string            `json:"effort_sheet_url" validate:"omitempty,url"`
}

func (r *CreateProjectRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillingLevel == "" {
		return nil
	}
	return r.BillingLevel.Validate()
}

func (r *CreateProjectRequest) ToProject(ctx context.Context) *project.Project {
	level := r.BillingLevel
	if level == "" {
		level = types.BillingLevelClient
	}
	return &project.Project{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROJECT),
		ClientID:       r.ClientID,
		Name:           r.Name,
		BillingLevel:   level,
		EffortSheetURL: r.EffortSheetURL,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

type UpdateProjectRequest struct {
	Name           *string             `json:"name" validate:"omitempty,max=255"`
	BillingLevel   *types.BillingLevel `json:"billing_level"`
	EffortSheetURL *string             `json:"effort_sheet_url" validate:"omitempty,url"`
	Status         *types.Status       `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateProjectRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillingLevel != nil {
		return r.BillingLevel.Validate()
	}
	return nil
}

// Apply copies the set fields onto p
func (r *UpdateProjectRequest) Apply(p *project.Project) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.BillingLevel != nil {
		p.BillingLevel = *r.BillingLevel
	}
	if r.EffortSheetURL != nil {
		p.EffortSheetURL = r.EffortSheetURL
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
}

type ProjectResponse struct {
	*project.Project
	TeamMembers []*project.TeamMember `json:"team_members,omitempty"`
}

// ListProjectsResponse represents the response for listing projects
type ListProjectsResponse = types.ListResponse[*ProjectResponse]

type AddTeamMemberRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Designation string `json:"designation" validate:"omitempty,max=100"`
}

func (r *AddTeamMemberRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *AddTeamMemberRequest) ToTeamMember(ctx context.Context, projectID string) *project.TeamMember {
	return &project.TeamMember{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TEAM_MEMBER),
		ProjectID:   projectID,
		UserID:      r.UserID,
		Designation: r.Designation,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

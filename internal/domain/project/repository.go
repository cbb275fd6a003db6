package project

import (
	"context"

	"github.com/opsdesk/portal/internal/types"
)

// Repository defines the interface for project data access
type Repository interface {
	Create(ctx context.Context, project *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, filter *types.ProjectFilter) ([]*Project, error)
	Count(ctx context.Context, filter *types.ProjectFilter) (int, error)
	Update(ctx context.Context, project *Project) error

	// GetActiveByName returns ErrNotFound when no active project has the name
	GetActiveByName(ctx context.Context, name string) (*Project, error)
}

// TeamMemberRepository defines data access for project team members
type TeamMemberRepository interface {
	Create(ctx context.Context, member *TeamMember) error
	ListByProject(ctx context.Context, projectID string) ([]*TeamMember, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	// ListByProjects returns members of any of the projects regardless of status
	ListByProjects(ctx context.Context, projectIDs []string) ([]*TeamMember, error)
	// GetActive returns ErrNotFound when the user is not an active member of the project
	GetActive(ctx context.Context, projectID, userID string) (*TeamMember, error)
}

// EffortRepository defines data access for recorded efforts
type EffortRepository interface {
	// GetLatestBefore returns the newest effort strictly before date,
	// ErrNotFound when there is none
	GetLatestBefore(ctx context.Context, teamMemberID string, date types.Date) (*Effort, error)
	// Upsert creates or replaces the effort of (team member, added on)
	Upsert(ctx context.Context, effort *Effort) error
	// ListInRange returns the efforts of the team members added within [start, end]
	ListInRange(ctx context.Context, teamMemberIDs []string, start, end types.Date) ([]*Effort, error)
}

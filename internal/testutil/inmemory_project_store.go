package testutil

import (
	"context"
	"strings"

	"github.com/opsdesk/portal/internal/domain/project"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

// InMemoryProjectStore implements project.Repository
type InMemoryProjectStore struct {
	*InMemoryStore[*project.Project]
}

func NewInMemoryProjectStore() *InMemoryProjectStore {
	return &InMemoryProjectStore{
		InMemoryStore: NewInMemoryStore[*project.Project](),
	}
}

func copyProject(p *project.Project) *project.Project {
	if p == nil {
		return nil
	}
	cp := *p
	if p.EffortSheetURL != nil {
		cp.EffortSheetURL = lo.ToPtr(*p.EffortSheetURL)
	}
	return &cp
}

func (s *InMemoryProjectStore) Create(ctx context.Context, p *project.Project) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProject(p))
}

func (s *InMemoryProjectStore) Get(ctx context.Context, id string) (*project.Project, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || p.Status == types.StatusDeleted {
		return nil, ierr.NewError("project not found").
			WithHint("project not found").
			Mark(ierr.ErrNotFound)
	}
	return copyProject(p), nil
}

func projectFilterFn(filter *types.ProjectFilter) FilterFunc[*project.Project] {
	return func(ctx context.Context, p *project.Project, _ interface{}) bool {
		if filter == nil {
			return p.Status != types.StatusDeleted
		}
		if !matchesStatus(p.Status, filter.QueryFilter) {
			return false
		}
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			return false
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			return false
		}
		if filter.BillingLevel != "" && p.BillingLevel != filter.BillingLevel {
			return false
		}
		if filter.WithEffortSheet && !p.HasEffortSheet() {
			return false
		}
		return true
	}
}

func projectSortFn(i, j *project.Project) bool {
	if i.CreatedAt.Equal(j.CreatedAt) {
		return i.ID < j.ID
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryProjectStore) List(ctx context.Context, filter *types.ProjectFilter) ([]*project.Project, error) {
	var qf interface{}
	if filter != nil {
		qf = queryFilter(filter.QueryFilter)
	}
	items, err := s.InMemoryStore.List(ctx, qf, projectFilterFn(filter), projectSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *project.Project, _ int) *project.Project { return copyProject(p) }), nil
}

func (s *InMemoryProjectStore) Count(ctx context.Context, filter *types.ProjectFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, projectFilterFn(filter))
}

func (s *InMemoryProjectStore) Update(ctx context.Context, p *project.Project) error {
	return s.InMemoryStore.Update(ctx, p.ID, copyProject(p))
}

func (s *InMemoryProjectStore) GetActiveByName(ctx context.Context, name string) (*project.Project, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *project.Project, _ interface{}) bool {
		return p.Name == name && p.Status == types.StatusActive
	}, func(i, j *project.Project) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("project not found").
			WithHintf("No active project named %s", name).
			Mark(ierr.ErrNotFound)
	}
	return copyProject(items[0]), nil
}

// InMemoryTeamMemberStore implements project.TeamMemberRepository
type InMemoryTeamMemberStore struct {
	*InMemoryStore[*project.TeamMember]
}

func NewInMemoryTeamMemberStore() *InMemoryTeamMemberStore {
	return &InMemoryTeamMemberStore{
		InMemoryStore: NewInMemoryStore[*project.TeamMember](),
	}
}

func copyTeamMember(m *project.TeamMember) *project.TeamMember {
	cp := *m
	return &cp
}

func teamMemberSortFn(i, j *project.TeamMember) bool {
	if i.CreatedAt.Equal(j.CreatedAt) {
		return i.ID < j.ID
	}
	return i.CreatedAt.Before(j.CreatedAt)
}

func (s *InMemoryTeamMemberStore) Create(ctx context.Context, m *project.TeamMember) error {
	return s.InMemoryStore.Create(ctx, m.ID, copyTeamMember(m))
}

func (s *InMemoryTeamMemberStore) ListByProject(ctx context.Context, projectID string) ([]*project.TeamMember, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, m *project.TeamMember, _ interface{}) bool {
		return m.ProjectID == projectID && m.IsActive()
	}, teamMemberSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(m *project.TeamMember, _ int) *project.TeamMember { return copyTeamMember(m) }), nil
}

func (s *InMemoryTeamMemberStore) CountByProject(ctx context.Context, projectID string) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, m *project.TeamMember, _ interface{}) bool {
		return m.ProjectID == projectID && m.Status == types.StatusActive
	})
}

func (s *InMemoryTeamMemberStore) ListByProjects(ctx context.Context, projectIDs []string) ([]*project.TeamMember, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, m *project.TeamMember, _ interface{}) bool {
		return lo.Contains(projectIDs, m.ProjectID) && m.Status != types.StatusDeleted
	}, teamMemberSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(m *project.TeamMember, _ int) *project.TeamMember { return copyTeamMember(m) }), nil
}

func (s *InMemoryTeamMemberStore) GetActive(ctx context.Context, projectID, userID string) (*project.TeamMember, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, m *project.TeamMember, _ interface{}) bool {
		return m.ProjectID == projectID && m.UserID == userID && m.IsActive()
	}, teamMemberSortFn)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("team member not found").
			WithHint("team member not found").
			Mark(ierr.ErrNotFound)
	}
	return copyTeamMember(items[0]), nil
}

// InMemoryEffortStore implements project.EffortRepository, keyed by (team member, day)
type InMemoryEffortStore struct {
	*InMemoryStore[*project.Effort]
}

func NewInMemoryEffortStore() *InMemoryEffortStore {
	return &InMemoryEffortStore{
		InMemoryStore: NewInMemoryStore[*project.Effort](),
	}
}

func effortKey(teamMemberID string, day types.Date) string {
	return teamMemberID + "/" + day.String()
}

func copyEffort(e *project.Effort) *project.Effort {
	cp := *e
	return &cp
}

func (s *InMemoryEffortStore) GetLatestBefore(ctx context.Context, teamMemberID string, date types.Date) (*project.Effort, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, e *project.Effort, _ interface{}) bool {
		return e.TeamMemberID == teamMemberID && e.AddedOn.Before(date)
	}, func(i, j *project.Effort) bool {
		return i.AddedOn.After(j.AddedOn)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("effort not found").
			WithHint("effort not found").
			Mark(ierr.ErrNotFound)
	}
	return copyEffort(items[0]), nil
}

func (s *InMemoryEffortStore) Upsert(ctx context.Context, e *project.Effort) error {
	key := effortKey(e.TeamMemberID, e.AddedOn)
	cp := copyEffort(e)
	if existing, err := s.InMemoryStore.Get(ctx, key); err == nil {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	}
	s.InMemoryStore.Put(ctx, key, cp)
	return nil
}

func (s *InMemoryEffortStore) ListInRange(ctx context.Context, teamMemberIDs []string, start, end types.Date) ([]*project.Effort, error) {
	if len(teamMemberIDs) == 0 {
		return nil, nil
	}
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, e *project.Effort, _ interface{}) bool {
		return lo.Contains(teamMemberIDs, e.TeamMemberID) && e.AddedOn.Between(start, end)
	}, func(i, j *project.Effort) bool {
		if i.AddedOn.Equal(j.AddedOn) {
			return i.TeamMemberID < j.TeamMemberID
		}
		return i.AddedOn.Before(j.AddedOn)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(e *project.Effort, _ int) *project.Effort { return copyEffort(e) }), nil
}

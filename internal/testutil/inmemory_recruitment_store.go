package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/opsdesk/portal/internal/domain/recruitment"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

type application struct {
	jobID    string
	on       types.Date
	verified bool
}

// InMemoryRecruitmentStore implements recruitment.Repository over seeded rows
type InMemoryRecruitmentStore struct {
	mu           sync.RWMutex
	applicants   []types.Date
	applications []application
	jobs         []*recruitment.Job
	domains      []*recruitment.JobDomain
}

func NewInMemoryRecruitmentStore() *InMemoryRecruitmentStore {
	return &InMemoryRecruitmentStore{}
}

// AddApplicants records n applicants created on day
func (s *InMemoryRecruitmentStore) AddApplicants(day types.Date, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.applicants = append(s.applicants, day)
	}
}

// AddApplication records an application to a job
func (s *InMemoryRecruitmentStore) AddApplication(jobID string, day types.Date, verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications = append(s.applications, application{jobID: jobID, on: day, verified: verified})
}

func (s *InMemoryRecruitmentStore) AddJob(job *recruitment.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

func (s *InMemoryRecruitmentStore) AddJobDomain(domain *recruitment.JobDomain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains = append(s.domains, domain)
}

func (s *InMemoryRecruitmentStore) CountApplicantsOn(ctx context.Context, day types.Date) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.CountBy(s.applicants, func(d types.Date) bool { return d.Equal(day) }), nil
}

func (s *InMemoryRecruitmentStore) DailyApplicantCounts(ctx context.Context, start, end types.Date) ([]recruitment.DailyCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[types.Date]int)
	for _, d := range s.applicants {
		if d.Between(start, end) {
			counts[d]++
		}
	}

	out := make([]recruitment.DailyCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, recruitment.DailyCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *InMemoryRecruitmentStore) CountVerifiedApplications(ctx context.Context, from, to types.Date) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.CountBy(s.applications, func(a application) bool {
		return a.verified && a.on.Between(from, to)
	}), nil
}

func (s *InMemoryRecruitmentStore) ApplicationsPerJob(ctx context.Context) ([]recruitment.JobApplications, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := lo.Map(s.jobs, func(j *recruitment.Job, _ int) recruitment.JobApplications {
		return recruitment.JobApplications{
			JobID: j.ID,
			Title: j.Title,
			Count: lo.CountBy(s.applications, func(a application) bool { return a.jobID == j.ID }),
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *InMemoryRecruitmentStore) GetJobDomainBySlug(ctx context.Context, slug string) (*recruitment.JobDomain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := lo.Find(s.domains, func(d *recruitment.JobDomain) bool { return d.Slug == slug })
	if !ok {
		return nil, ierr.NewError("job domain not found").
			WithHintf("No job domain with slug %s", slug).
			Mark(ierr.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (s *InMemoryRecruitmentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicants = nil
	s.applications = nil
	s.jobs = nil
	s.domains = nil
}

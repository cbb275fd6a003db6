package recruitment

import (
	"context"

	"github.com/opsdesk/portal/internal/types"
)

// Repository defines read access for recruitment reports. Day boundaries
// are evaluated in the database session time zone.
type Repository interface {
	CountApplicantsOn(ctx context.Context, day types.Date) (int, error)
	// DailyApplicantCounts returns one row per day with applicants in [start, end], ordered by day
	DailyApplicantCounts(ctx context.Context, start, end types.Date) ([]DailyCount, error)
	// CountVerifiedApplications counts verified applications created in [from, to]
	CountVerifiedApplications(ctx context.Context, from, to types.Date) (int, error)
	// ApplicationsPerJob returns every job with its application count, ordered by title
	ApplicationsPerJob(ctx context.Context) ([]JobApplications, error)
	GetJobDomainBySlug(ctx context.Context, slug string) (*JobDomain, error)
}

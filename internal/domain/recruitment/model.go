package recruitment

import (
	"time"

	"github.com/opsdesk/portal/internal/types"
)

// ChartLabelLayout formats days on report charts, e.g. "Mar 05"
const ChartLabelLayout = "Jan 02"

// JobDomain groups jobs, looked up by slug
type JobDomain struct {
	ID     string `db:"id" json:"id"`
	Domain string `db:"domain" json:"domain"`
	Slug   string `db:"slug" json:"slug"`
}

// Job is an opening applicants apply to
type Job struct {
	ID        string       `db:"id" json:"id"`
	Title     string       `db:"title" json:"title"`
	DomainID  *string      `db:"domain_id" json:"domain_id"`
	Status    types.Status `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// DailyCount is the number of applicants received on a day
type DailyCount struct {
	Date  types.Date `db:"day" json:"date"`
	Count int        `db:"count" json:"count"`
}

// Label is the chart label of the day
func (c DailyCount) Label() string {
	return c.Date.Format(ChartLabelLayout)
}

// JobApplications is the number of applications a job received
type JobApplications struct {
	JobID string `db:"job_id" json:"job_id"`
	Title string `db:"title" json:"title"`
	Count int    `db:"count" json:"count"`
}

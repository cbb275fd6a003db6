package project

import (
	"strings"
	"time"

	"github.com/opsdesk/portal/internal/types"
	"github.com/shopspring/decimal"
)

// Project is a piece of work done for a client
type Project struct {
	ID       string `db:"id" json:"id"`
	ClientID string `db:"client_id" json:"client_id"`
	Name     string `db:"name" json:"name"`

	// BillingLevel client means the project is rolled into the client invoice
	BillingLevel types.BillingLevel `db:"billing_level" json:"billing_level"`

	// EffortSheetURL is the google sheet the team logs effort in
	EffortSheetURL *string `db:"effort_sheet_url" json:"effort_sheet_url"`

	types.BaseModel
}

// HasEffortSheet reports whether the project syncs effort from a sheet
func (p *Project) HasEffortSheet() bool {
	return p.EffortSheetURL != nil && strings.TrimSpace(*p.EffortSheetURL) != ""
}

// TeamMember assigns a user to a project
type TeamMember struct {
	ID          string `db:"id" json:"id"`
	ProjectID   string `db:"project_id" json:"project_id"`
	UserID      string `db:"user_id" json:"user_id"`
	Designation string `db:"designation" json:"designation"`

	types.BaseModel
}

// Effort is the effort of one team member recorded on one day.
// ActualEffort is the delta since the previous record of the same billing
// window; TotalEffort is the cumulative figure read from the effort sheet.
type Effort struct {
	ID           string          `db:"id" json:"id"`
	TeamMemberID string          `db:"project_team_member_id" json:"project_team_member_id"`
	AddedOn      types.Date      `db:"added_on" json:"added_on"`
	ActualEffort decimal.Decimal `db:"actual_effort" json:"actual_effort"`
	TotalEffort  decimal.Decimal `db:"total_effort_in_effortsheet" json:"total_effort_in_effortsheet"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// SumActualEffort adds up the actual effort of efforts
func SumActualEffort(efforts []*Effort) decimal.Decimal {
	total := decimal.Zero
	for _, e := range efforts {
		total = total.Add(e.ActualEffort)
	}
	return total
}

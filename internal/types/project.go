package types

import (
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/samber/lo"
)

// BillingLevel decides whether a project is invoiced on its own or rolled up into its client's invoice
type BillingLevel string

const (
	BillingLevelClient  BillingLevel = "client"
	BillingLevelProject BillingLevel = "project"
)

func (b BillingLevel) String() string {
	return string(b)
}

func (b BillingLevel) Validate() error {
	allowed := []BillingLevel{
		BillingLevelClient,
		BillingLevelProject,
	}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid billing level").
			WithHint("Billing level must be client or project").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ProjectFilter represents filters for project queries
type ProjectFilter struct {
	*QueryFilter
	ClientID     string       `json:"client_id,omitempty" form:"client_id" validate:"omitempty"`
	Name         string       `json:"name,omitempty" form:"name" validate:"omitempty"`
	BillingLevel BillingLevel `json:"billing_level,omitempty" form:"billing_level" validate:"omitempty"`
	// WithEffortSheet restricts the result to projects that have an effort sheet url
	WithEffortSheet bool `json:"with_effort_sheet,omitempty" form:"with_effort_sheet"`
}

// NewProjectFilter creates a new ProjectFilter with default values
func NewProjectFilter() *ProjectFilter {
	return &ProjectFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitProjectFilter creates a new ProjectFilter with no pagination limits
func NewNoLimitProjectFilter() *ProjectFilter {
	return &ProjectFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f ProjectFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.BillingLevel != "" {
		if err := f.BillingLevel.Validate(); err != nil {
			return err
		}
	}
	return nil
}

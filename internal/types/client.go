package types

import (
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/samber/lo"
)

// ClientFilter represents filters for client queries
type ClientFilter struct {
	*QueryFilter
	ClientIDs           []string `json:"client_ids,omitempty" form:"client_ids" validate:"omitempty"`
	Name                string   `json:"name,omitempty" form:"name" validate:"omitempty"`
	KeyAccountManagerID string   `json:"key_account_manager_id,omitempty" form:"key_account_manager_id" validate:"omitempty"`
}

// NewClientFilter creates a new ClientFilter with default values
func NewClientFilter() *ClientFilter {
	return &ClientFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitClientFilter creates a new ClientFilter with no pagination limits
func NewNoLimitClientFilter() *ClientFilter {
	return &ClientFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the client filter
func (f ClientFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ContactPersonType classifies who receives invoice mails
type ContactPersonType string

const (
	ContactPersonTypePrimary   ContactPersonType = "primary-billing-contact"
	ContactPersonTypeSecondary ContactPersonType = "secondary-billing-contact"
	ContactPersonTypeTertiary  ContactPersonType = "tertiary-billing-contact"
)

func (t ContactPersonType) Validate() error {
	allowed := []ContactPersonType{
		ContactPersonTypePrimary,
		ContactPersonTypeSecondary,
		ContactPersonTypeTertiary,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid contact person type").
			WithHint("Please provide a valid contact person type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

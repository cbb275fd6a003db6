package types

// UserFilter represents filters for user queries
type UserFilter struct {
	*QueryFilter
	Nicknames []string `json:"nicknames,omitempty" form:"nicknames" validate:"omitempty"`
}

// NewNoLimitUserFilter creates a new UserFilter with no pagination limits
func NewNoLimitUserFilter() *UserFilter {
	return &UserFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

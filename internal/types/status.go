package types

// Status is the lifecycle state of a portal row. Deleted rows are soft
// deleted and never returned by list queries.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

func (s Status) Validate() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// Listable reports whether rows in this state may appear in listings
func (s Status) Listable() bool {
	return s == StatusActive || s == StatusInactive
}

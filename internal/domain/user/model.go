package user

import "github.com/opsdesk/portal/internal/types"

// User is an employee of the company. Nickname is how people appear in effort sheets.
type User struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Nickname string `db:"nickname" json:"nickname"`
	Email    string `db:"email" json:"email"`

	types.BaseModel
}

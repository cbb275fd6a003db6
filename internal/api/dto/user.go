package dto

import (
	"context"
	"strings"

	"github.com/opsdesk/portal/internal/domain/user"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
)

// CreateUserRequest registers an employee. Nickname is how the person is
// named in effort sheets.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Nickname string `json:"nickname" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

func (r *CreateUserRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateUserRequest) ToUser(ctx context.Context) *user.User {
	return &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:      r.Name,
		Nickname:  strings.TrimSpace(r.Nickname),
		Email:     r.Email,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UserResponse struct {
	*user.User
}

type ListUsersResponse = types.ListResponse[*UserResponse]

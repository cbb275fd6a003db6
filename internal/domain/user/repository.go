package user

import (
	"context"

	"github.com/opsdesk/portal/internal/types"
)

// Repository defines the interface for user data access
type Repository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByNickname(ctx context.Context, nickname string) (*User, error)
	List(ctx context.Context, filter *types.UserFilter) ([]*User, error)
}

package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/opsdesk/portal/internal/domain/user"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, name, nickname, email, status, created_at, updated_at, created_by, updated_by`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO users (id, name, nickname, email, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetQuerier(ctx).ExecContext(
		ctx, query,
		u.ID,
		u.Name,
		u.Nickname,
		u.Email,
		u.Status,
		u.CreatedAt,
		u.UpdatedAt,
		u.CreatedBy,
		u.UpdatedBy,
	)
	return wrapErr(err, "user", u.ID)
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id); err != nil {
		return nil, wrapErr(err, "user", id)
	}
	return &u, nil
}

// GetByNickname matches the nickname people use in effort sheets
func (r *userRepository) GetByNickname(ctx context.Context, nickname string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE nickname = $1 AND status = $2`

	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, nickname, types.StatusActive); err != nil {
		return nil, wrapErr(err, "user", nickname)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	w := &whereBuilder{}
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
		if len(filter.Nicknames) > 0 {
			w.add("nickname = ANY(?)", pq.Array(filter.Nicknames))
		}
	}
	w.status("status", qf)
	query := `SELECT ` + userColumns + ` FROM users` + w.sql() + w.page("name", qf)

	var users []*user.User
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &users, query, w.args...); err != nil {
		return nil, wrapErr(err, "user", "")
	}
	return users, nil
}

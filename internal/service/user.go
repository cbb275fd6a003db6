package service

import (
	"context"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/user"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/interfaces"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

type UserService = interfaces.UserService

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
	}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := req.ToUser(ctx)

	// nicknames identify people in effort sheets
	existing, err := s.UserRepo.GetByNickname(ctx, u.Nickname)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewError("nickname already taken").
			WithHintf("Another user already goes by %s", u.Nickname).
			WithReportableDetails(map[string]any{
				"nickname": u.Nickname,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return &dto.UserResponse{User: u}, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}

func (s *userService) GetUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error) {
	if filter == nil {
		filter = types.NewNoLimitUserFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return &dto.UserResponse{User: u}
	})

	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

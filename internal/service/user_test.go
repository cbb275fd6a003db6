package service

import (
	"testing"

	"github.com/opsdesk/portal/internal/api/dto"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/testutil"
	"github.com/opsdesk/portal/internal/types"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewUserService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *UserServiceSuite) TestCreateUser() {
	resp, err := s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{
		Name:     "Asha Rao",
		Nickname: " asha ",
		Email:    "asha@opsdesk.test",
	})
	s.Require().NoError(err)
	s.Equal("asha", resp.Nickname)

	got, err := s.service.GetUser(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal("Asha Rao", got.Name)

	_, err = s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{
		Name:     "Asha Menon",
		Nickname: "asha",
		Email:    "asha.m@opsdesk.test",
	})
	s.True(ierr.IsAlreadyExists(err))

	_, err = s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{Name: "No Nick", Email: "x@opsdesk.test"})
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestGetUsers() {
	seedUser(&s.BaseServiceTestSuite, "Bala", "bala")
	seedUser(&s.BaseServiceTestSuite, "Anu", "anu")
	seedUser(&s.BaseServiceTestSuite, "Chitra", "chitra")

	resp, err := s.service.GetUsers(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(resp.Items, 3)

	filter := types.NewNoLimitUserFilter()
	filter.Nicknames = []string{"anu", "chitra"}
	resp, err = s.service.GetUsers(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 2)
	s.Equal("Anu", resp.Items[0].Name)
	s.Equal(2, resp.Pagination.Total)
}

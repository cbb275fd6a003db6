package service

import (
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/domain/invoice"
	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/domain/user"
	"github.com/opsdesk/portal/internal/testutil"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// newTestServiceParams wires the suite's in-memory dependencies into ServiceParams
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		Cache:           s.GetCache(),
		Clock:           s.GetClock(),
		Sentry:          s.GetSentry(),
		ClientRepo:      stores.ClientRepo,
		ProjectRepo:     stores.ProjectRepo,
		TeamMemberRepo:  stores.TeamMemberRepo,
		EffortRepo:      stores.EffortRepo,
		UserRepo:        stores.UserRepo,
		InvoiceRepo:     stores.InvoiceRepo,
		SalaryRepo:      stores.SalaryRepo,
		RecruitmentRepo: stores.RecruitmentRepo,
		SheetsReader:    s.GetSheetsReader(),
	}
}

func seedClient(s *testutil.BaseServiceTestSuite, name, country string) *client.Client {
	c := &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		Name:      name,
		Email:     lo.SnakeCase(name) + "@example.com",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	if country != "" {
		c.CountryCode = lo.ToPtr(country)
	}
	s.Require().NoError(s.GetStores().ClientRepo.Create(s.GetContext(), c))
	return c
}

// seedBillingDetail stores a billing detail; an empty rate leaves it unset
func seedBillingDetail(s *testutil.BaseServiceTestSuite, clientID, rate string, billingDay *int) *client.BillingDetail {
	d := &client.BillingDetail{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_DETAIL),
		ClientID:   clientID,
		BillingDay: billingDay,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	if rate != "" {
		d.ServiceRate = lo.ToPtr(decimal.RequireFromString(rate))
	}
	s.Require().NoError(s.GetStores().ClientRepo.UpsertBillingDetail(s.GetContext(), d))
	return d
}

func seedProject(s *testutil.BaseServiceTestSuite, clientID, name string, level types.BillingLevel) *project.Project {
	p := &project.Project{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROJECT),
		ClientID:     clientID,
		Name:         name,
		BillingLevel: level,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().ProjectRepo.Create(s.GetContext(), p))
	return p
}

func seedUser(s *testutil.BaseServiceTestSuite, name, nickname string) *user.User {
	u := &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:      name,
		Nickname:  nickname,
		Email:     nickname + "@opsdesk.test",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	return u
}

func seedMember(s *testutil.BaseServiceTestSuite, projectID, userID string) *project.TeamMember {
	m := &project.TeamMember{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TEAM_MEMBER),
		ProjectID:   projectID,
		UserID:      userID,
		Designation: "engineer",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().TeamMemberRepo.Create(s.GetContext(), m))
	return m
}

func seedEffort(s *testutil.BaseServiceTestSuite, memberID string, on types.Date, actual, total string) {
	now := s.GetNow()
	s.Require().NoError(s.GetStores().EffortRepo.Upsert(s.GetContext(), &project.Effort{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EFFORT),
		TeamMemberID: memberID,
		AddedOn:      on,
		ActualEffort: decimal.RequireFromString(actual),
		TotalEffort:  decimal.RequireFromString(total),
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func seedInvoice(s *testutil.BaseServiceTestSuite, inv *invoice.Invoice) *invoice.Invoice {
	if inv.ID == "" {
		inv.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
	}
	if inv.InvoiceStatus == "" {
		inv.InvoiceStatus = types.InvoiceStatusSent
	}
	inv.BaseModel = types.GetDefaultBaseModel(s.GetContext())
	s.Require().NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

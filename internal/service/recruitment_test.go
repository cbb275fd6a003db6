package service

import (
	"testing"
	"time"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/recruitment"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/testutil"
	"github.com/opsdesk/portal/internal/types"
	"github.com/stretchr/testify/suite"
)

type RecruitmentReportServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RecruitmentReportService
	store   *testutil.InMemoryRecruitmentStore
}

func TestRecruitmentReportService(t *testing.T) {
	suite.Run(t, new(RecruitmentReportServiceSuite))
}

func (s *RecruitmentReportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRecruitmentReportService(newTestServiceParams(&s.BaseServiceTestSuite))
	s.store = s.GetStores().RecruitmentRepo.(*testutil.InMemoryRecruitmentStore)
}

func march(day int) types.Date {
	return types.NewDate(2024, time.March, day)
}

func (s *RecruitmentReportServiceSuite) TestGetReport_DefaultWindow() {
	s.store.AddApplicants(types.NewDate(2024, time.February, 28), 4)
	s.store.AddApplicants(march(2), 3)
	s.store.AddApplicants(march(10), 1)
	s.store.AddApplicants(march(15), 2)

	s.store.AddApplication("job_1", types.NewDate(2024, time.February, 20), true)
	s.store.AddApplication("job_1", march(3), true)
	s.store.AddApplication("job_1", march(4), false)

	resp, err := s.service.GetReport(s.GetContext(), dto.RecruitmentReportRequest{})
	s.Require().NoError(err)

	s.Equal(march(1), resp.StartDate)
	s.Equal(march(15), resp.EndDate)
	s.Equal(2, resp.TodayCount)
	s.Equal(6, resp.TotalApplicant)
	s.Equal([]string{"Mar 02", "Mar 10", "Mar 15"}, resp.Chart.Labels)
	s.Equal([]int{3, 1, 2}, resp.Chart.Values)
	// without a configured start, verified applications count from the window start
	s.Equal(1, resp.VerifiedCount)
}

func (s *RecruitmentReportServiceSuite) TestGetReport_ConfiguredVerifiedStart() {
	s.GetConfig().Recruitment.VerifiedApplicationsFrom = "2024-01-01"
	defer func() { s.GetConfig().Recruitment.VerifiedApplicationsFrom = "" }()

	s.store.AddApplication("job_1", types.NewDate(2023, time.December, 31), true)
	s.store.AddApplication("job_1", types.NewDate(2024, time.January, 5), true)
	s.store.AddApplication("job_2", march(3), true)

	resp, err := s.service.GetReport(s.GetContext(), dto.RecruitmentReportRequest{
		StartDate: march(10),
		EndDate:   march(12),
	})
	s.Require().NoError(err)
	s.Equal(2, resp.VerifiedCount)
	s.Empty(resp.Chart.Labels)
}

func (s *RecruitmentReportServiceSuite) TestGetReport_InvalidWindow() {
	_, err := s.service.GetReport(s.GetContext(), dto.RecruitmentReportRequest{
		StartDate: march(10),
		EndDate:   march(1),
	})
	s.True(ierr.IsValidation(err))
}

func (s *RecruitmentReportServiceSuite) TestGetReportCard() {
	s.store.AddApplicants(types.NewDate(2024, time.February, 21), 9)
	s.store.AddApplicants(types.NewDate(2024, time.February, 22), 1)
	s.store.AddApplicants(march(14), 5)

	resp, err := s.service.GetReportCard(s.GetContext())
	s.Require().NoError(err)
	s.Equal(types.NewDate(2024, time.February, 22), resp.StartDate)
	s.Equal(march(15), resp.EndDate)
	s.Equal([]string{"Feb 22", "Mar 14"}, resp.Chart.Labels)
	s.Equal([]int{1, 5}, resp.Chart.Values)
}

func (s *RecruitmentReportServiceSuite) TestGetJobApplications() {
	s.store.AddJob(&recruitment.Job{ID: "job_b", Title: "Backend Engineer"})
	s.store.AddJob(&recruitment.Job{ID: "job_a", Title: "Account Manager"})
	s.store.AddApplication("job_b", march(1), false)
	s.store.AddApplication("job_b", march(2), true)
	s.store.AddApplication("job_a", march(3), false)

	resp, err := s.service.GetJobApplications(s.GetContext())
	s.Require().NoError(err)
	s.Equal(3, resp.Total)
	s.Equal([]string{"Account Manager", "Backend Engineer"}, resp.Chart.Labels)
	s.Equal([]int{1, 2}, resp.Chart.Values)
}

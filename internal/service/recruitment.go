package service

import (
	"context"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/recruitment"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/interfaces"
	"github.com/opsdesk/portal/internal/types"
)

type RecruitmentReportService = interfaces.RecruitmentReportService

type recruitmentReportService struct {
	ServiceParams
}

func NewRecruitmentReportService(params ServiceParams) RecruitmentReportService {
	return &recruitmentReportService{
		ServiceParams: params,
	}
}

// GetReport charts the applicants received per day in a window, by default
// from the start of the month to today
func (s *recruitmentReportService) GetReport(ctx context.Context, req dto.RecruitmentReportRequest) (*dto.RecruitmentReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	today := s.Clock.Today()
	start, end := req.StartDate, req.EndDate
	if start.IsZero() {
		start = today.StartOfMonth()
	}
	if end.IsZero() {
		end = today
	}
	if end.Before(start) {
		return nil, ierr.NewError("end date before start date").
			WithHint("The report end date cannot be before its start date").
			WithReportableDetails(map[string]any{
				"start_date": start.String(),
				"end_date":   end.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	todayCount, err := s.RecruitmentRepo.CountApplicantsOn(ctx, today)
	if err != nil {
		return nil, err
	}

	counts, err := s.RecruitmentRepo.DailyApplicantCounts(ctx, start, end)
	if err != nil {
		return nil, err
	}

	verifiedFrom, err := s.verifiedApplicationsFrom(start)
	if err != nil {
		return nil, err
	}
	verified, err := s.RecruitmentRepo.CountVerifiedApplications(ctx, verifiedFrom, today)
	if err != nil {
		return nil, err
	}

	chart := dailyChart(counts)
	total := 0
	for _, v := range chart.Values {
		total += v
	}

	return &dto.RecruitmentReportResponse{
		StartDate:      start,
		EndDate:        end,
		TodayCount:     todayCount,
		VerifiedCount:  verified,
		TotalApplicant: total,
		Chart:          chart,
	}, nil
}

// GetReportCard charts the applicants of the last few days
func (s *recruitmentReportService) GetReportCard(ctx context.Context) (*dto.ReportCardResponse, error) {
	days := s.Config.Recruitment.ReportCardDays
	if days <= 0 {
		return nil, ierr.NewError("report card window not configured").
			WithHint("Set recruitment.report_card_days to a positive number of days").
			Mark(ierr.ErrInvalidConfiguration)
	}

	end := s.Clock.Today()
	start := end.AddDays(-(days - 1))

	counts, err := s.RecruitmentRepo.DailyApplicantCounts(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.ReportCardResponse{
		StartDate: start,
		EndDate:   end,
		Chart:     dailyChart(counts),
	}, nil
}

// GetJobApplications counts the applications every job received
func (s *recruitmentReportService) GetJobApplications(ctx context.Context) (*dto.JobApplicationsResponse, error) {
	jobs, err := s.RecruitmentRepo.ApplicationsPerJob(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.JobApplicationsResponse{
		Jobs: jobs,
		Chart: dto.ChartData{
			Labels: make([]string, 0, len(jobs)),
			Values: make([]int, 0, len(jobs)),
		},
	}
	for _, j := range jobs {
		resp.Total += j.Count
		resp.Chart.Labels = append(resp.Chart.Labels, j.Title)
		resp.Chart.Values = append(resp.Chart.Values, j.Count)
	}
	return resp, nil
}

// verifiedApplicationsFrom is the configured start of verified application
// counting, or fallback when none is configured
func (s *recruitmentReportService) verifiedApplicationsFrom(fallback types.Date) (types.Date, error) {
	from := s.Config.Recruitment.VerifiedApplicationsFrom
	if from == "" {
		return fallback, nil
	}
	d, err := types.ParseDate(from)
	if err != nil {
		return types.Date{}, ierr.WithError(err).
			WithHintf("recruitment.verified_applications_from %q is not a date", from).
			Mark(ierr.ErrInvalidConfiguration)
	}
	return d, nil
}

func dailyChart(counts []recruitment.DailyCount) dto.ChartData {
	chart := dto.ChartData{
		Labels: make([]string, 0, len(counts)),
		Values: make([]int, 0, len(counts)),
	}
	for _, c := range counts {
		chart.Labels = append(chart.Labels, c.Label())
		chart.Values = append(chart.Values, c.Count)
	}
	return chart
}

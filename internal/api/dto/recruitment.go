package dto

import (
	"github.com/opsdesk/portal/internal/domain/recruitment"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
)

// RecruitmentReportRequest is the date window of the applicant report.
// Zero dates default to the start of the current month and today.
type RecruitmentReportRequest struct {
	StartDate types.Date `json:"start_date" form:"start_date"`
	EndDate   types.Date `json:"end_date" form:"end_date"`
}

func (r *RecruitmentReportRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ChartData is a label/value series ready for a chart
type ChartData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type RecruitmentReportResponse struct {
	StartDate      types.Date `json:"start_date"`
	EndDate        types.Date `json:"end_date"`
	TodayCount     int        `json:"today_count"`
	VerifiedCount  int        `json:"verified_count"`
	TotalApplicant int        `json:"total_applicants"`
	Chart          ChartData  `json:"chart"`
}

type ReportCardResponse struct {
	StartDate types.Date `json:"start_date"`
	EndDate   types.Date `json:"end_date"`
	Chart     ChartData  `json:"chart"`
}

type JobApplicationsResponse struct {
	Jobs  []recruitment.JobApplications `json:"jobs"`
	Total int                           `json:"total"`
	Chart ChartData                     `json:"chart"`
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/api/dto"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/service"
)

type RecruitmentHandler struct {
	service service.RecruitmentReportService
}

func NewRecruitmentHandler(service service.RecruitmentReportService) *RecruitmentHandler {
	return &RecruitmentHandler{service: service}
}

// @Summary Applicant report
// @Description Applicants per day, by default from the start of the month to today
// @Tags Recruitment
// @Produce json
// @Param start_date query string false "Start date"
// @Param end_date query string false "End date"
// @Success 200 {object} dto.RecruitmentReportResponse
// @Router /recruitment/reports [get]
func (h *RecruitmentHandler) GetReport(c *gin.Context) {
	var req dto.RecruitmentReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetReport(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RecruitmentHandler) GetReportCard(c *gin.Context) {
	resp, err := h.service.GetReportCard(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RecruitmentHandler) GetJobApplications(c *gin.Context) {
	resp, err := h.service.GetJobApplications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/api/dto"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/service"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		log:     log,
	}
}

// @Summary Resolve a billing period
// @Description Resolves the billing term for a billing day, months back from a reference date
// @Tags Billing
// @Produce json
// @Param reference query string false "Reference date, today when omitted"
// @Param billing_day query int false "Billing day, calendar months when omitted"
// @Param months_back query int false "Terms to go back"
// @Success 200 {object} billing.Period
// @Failure 422 {object} ierr.ErrorResponse
// @Router /billing/period [get]
func (h *BillingHandler) ResolvePeriod(c *gin.Context) {
	var req dto.ResolvePeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ResolvePeriod(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

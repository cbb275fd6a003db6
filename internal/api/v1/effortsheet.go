package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/api/dto"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/service"
)

type EffortSheetHandler struct {
	service service.EffortSheetSyncService
	logger  *logger.Logger
}

func NewEffortSheetHandler(service service.EffortSheetSyncService, logger *logger.Logger) *EffortSheetHandler {
	return &EffortSheetHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Sync effort sheets
// @Description Imports today's effort of every active project with an effort sheet, or of one project
// @Tags EffortSheet
// @Accept json
// @Produce json
// @Param request body dto.EffortSheetSyncRequest false "Limit the run to one project"
// @Success 200 {object} dto.EffortSheetSyncResponse
// @Router /effortsheet/sync [post]
func (h *EffortSheetHandler) Sync(c *gin.Context) {
	var req dto.EffortSheetSyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Invalid request format").
				Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.service.Sync(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	if resp.Failed > 0 {
		h.logger.Warnw("effort sheet sync finished with failures",
			"run_id", resp.RunID,
			"failed", resp.Failed,
		)
	}

	c.JSON(http.StatusOK, resp)
}

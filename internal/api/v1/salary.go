package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/api/dto"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/service"
)

type SalaryHandler struct {
	service service.SalaryService
}

func NewSalaryHandler(service service.SalaryService) *SalaryHandler {
	return &SalaryHandler{service: service}
}

func (h *SalaryHandler) GetConfiguration(c *gin.Context) {
	resp, err := h.service.GetConfiguration(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set the gross salary of an employee
// @Tags Salary
// @Accept json
// @Produce json
// @Param id path string true "Employee (user) ID"
// @Param salary body dto.UpsertEmployeeSalaryRequest true "Salary"
// @Success 200 {object} dto.EmployeeSalaryResponse
// @Router /salary/employees/{id} [put]
func (h *SalaryHandler) UpsertEmployeeSalary(c *gin.Context) {
	var req dto.UpsertEmployeeSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpsertEmployeeSalary(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SalaryHandler) GetEmployeeSalary(c *gin.Context) {
	resp, err := h.service.GetEmployeeSalary(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

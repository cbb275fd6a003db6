package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/api/dto"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice godoc
// @Summary Create an invoice
// @Description Bills the client for a term and stores the invoice with the next invoice number
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	inv, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// GetInvoice godoc
// @Summary Get an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid invoice id").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// GetNextInvoiceNumber godoc
// @Summary Next invoice number of a client
// @Tags Invoices
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.NextInvoiceNumberResponse
// @Router /clients/{id}/next-invoice-number [get]
func (h *InvoiceHandler) GetNextInvoiceNumber(c *gin.Context) {
	resp, err := h.invoiceService.NextInvoiceNumber(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetYearlyReport godoc
// @Summary Yearly invoice report
// @Tags Invoices
// @Produce json
// @Param year query int true "Year"
// @Param client_id query string false "Client ID"
// @Param currency query string false "Currency"
// @Success 200 {object} dto.InvoiceReportResponse
// @Router /invoices/report [get]
func (h *InvoiceHandler) GetYearlyReport(c *gin.Context) {
	var req dto.InvoiceReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.GetYearlyReport(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

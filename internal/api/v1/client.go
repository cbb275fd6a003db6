package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/api/dto"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/service"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

type ClientHandler struct {
	service service.ClientService
	billing service.BillingService
	log     *logger.Logger
}

func NewClientHandler(
	service service.ClientService,
	billing service.BillingService,
	log *logger.Logger,
) *ClientHandler {
	return &ClientHandler{
		service: service,
		billing: billing,
		log:     log,
	}
}

// @Summary Create a client
// @Description Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a client
// @Description Get a client with its billing detail
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	resp, err := h.service.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List clients
// @Tags Clients
// @Produce json
// @Param filter query types.ClientFilter false "Filter"
// @Success 200 {object} dto.ListClientsResponse
// @Router /clients [get]
func (h *ClientHandler) GetClients(c *gin.Context) {
	filter := types.NewClientFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.GetLimit() == 0 {
		filter.Limit = lo.ToPtr(types.FILTER_DEFAULT_LIMIT)
	}

	resp, err := h.service.GetClients(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Client"
// @Success 200 {object} dto.ClientResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateClient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a client
// @Tags Clients
// @Param id path string true "Client ID"
// @Success 204
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.service.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Set the billing detail of a client
// @Description Replaces the service rate and billing day. A missing billing day bills calendar months.
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param detail body dto.UpdateBillingDetailRequest true "Billing detail"
// @Success 200 {object} client.BillingDetail
// @Failure 422 {object} ierr.ErrorResponse
// @Router /clients/{id}/billing-detail [put]
func (h *ClientHandler) UpdateBillingDetail(c *gin.Context) {
	var req dto.UpdateBillingDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateBillingDetail(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Add a contact person
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param contact body dto.CreateContactRequest true "Contact"
// @Success 201 {object} client.ContactPerson
// @Router /clients/{id}/contacts [post]
func (h *ClientHandler) AddContact(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AddContact(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Compute the billable amount of a client
// @Description Bills the client level projects, or a single project, for a billing term
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Param months_back query int false "Terms to go back, the configured default when omitted"
// @Param project_id query string false "Bill a single project"
// @Success 200 {object} dto.ClientBillingResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /clients/{id}/billing [get]
func (h *ClientHandler) GetClientBilling(c *gin.Context) {
	var req dto.GetClientBillingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.billing.GetClientBilling(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Mail recipients of a client's invoice
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.MailRecipientsResponse
// @Router /clients/{id}/mail-recipients [get]
func (h *ClientHandler) GetMailRecipients(c *gin.Context) {
	resp, err := h.service.GetMailRecipients(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Billable hours per team member of a client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Param months_back query int false "Terms to go back"
// @Success 200 {object} dto.TeamMemberEffortsResponse
// @Router /clients/{id}/team-efforts [get]
func (h *ClientHandler) GetTeamMemberEfforts(c *gin.Context) {
	var req dto.GetClientBillingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetTeamMemberEfforts(c.Request.Context(), c.Param("id"), req.MonthsBack)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Clients ready to be invoiced this month
// @Tags Clients
// @Produce json
// @Success 200 {object} dto.InvoiceReadyClientsResponse
// @Router /clients/invoice-ready [get]
func (h *ClientHandler) ListInvoiceReady(c *gin.Context) {
	resp, err := h.service.ListInvoiceReady(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

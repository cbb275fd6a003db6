package dto

import (
	"context"
	"strings"

	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CreateClientRequest struct {
	Name                 string  `json:"name" validate:"required,max=255"`
	Email                string  `json:"email" validate:"omitempty,email"`
	Phone                string  `json:"phone" validate:"omitempty,max=30"`
	Address              string  `json:"address" validate:"omitempty,max=1000"`
	CountryCode          *string `json:"country_code" validate:"omitempty,len=2,iso3166_1_alpha2"`
	KeyAccountManagerID  *string `json:"key_account_manager_id"`
	IsChannelPartner     bool    `json:"is_channel_partner"`
	ChannelPartnerID     *string `json:"channel_partner_id"`
	ParentOrganisationID *string `json:"parent_organisation_id"`
}

func (r *CreateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	return &client.Client{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		Name:                 r.Name,
		Email:                r.Email,
		Phone:                r.Phone,
		Address:              r.Address,
		CountryCode:          normalizeCountry(r.CountryCode),
		KeyAccountManagerID:  r.KeyAccountManagerID,
		IsChannelPartner:     r.IsChannelPartner,
		ChannelPartnerID:     r.ChannelPartnerID,
		ParentOrganisationID: r.ParentOrganisationID,
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}
}

type UpdateClientRequest struct {
	Name                 *string       `json:"name" validate:"omitempty,max=255"`
	Email                *string       `json:"email" validate:"omitempty,email"`
	Phone                *string       `json:"phone" validate:"omitempty,max=30"`
	Address              *string       `json:"address" validate:"omitempty,max=1000"`
	CountryCode          *string       `json:"country_code" validate:"omitempty,len=2,iso3166_1_alpha2"`
	KeyAccountManagerID  *string       `json:"key_account_manager_id"`
	IsChannelPartner     *bool         `json:"is_channel_partner"`
	ChannelPartnerID     *string       `json:"channel_partner_id"`
	ParentOrganisationID *string       `json:"parent_organisation_id"`
	Status               *types.Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto c
func (r *UpdateClientRequest) Apply(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.CountryCode != nil {
		c.CountryCode = normalizeCountry(r.CountryCode)
	}
	if r.KeyAccountManagerID != nil {
		c.KeyAccountManagerID = r.KeyAccountManagerID
	}
	if r.IsChannelPartner != nil {
		c.IsChannelPartner = *r.IsChannelPartner
	}
	if r.ChannelPartnerID != nil {
		c.ChannelPartnerID = r.ChannelPartnerID
	}
	if r.ParentOrganisationID != nil {
		c.ParentOrganisationID = r.ParentOrganisationID
	}
	if r.Status != nil {
		c.Status = *r.Status
	}
}

func normalizeCountry(code *string) *string {
	if code == nil || strings.TrimSpace(*code) == "" {
		return nil
	}
	return lo.ToPtr(strings.ToUpper(strings.TrimSpace(*code)))
}

type ClientResponse struct {
	*client.Client
	Type          types.ClientType      `json:"type"`
	Currency      string                `json:"currency"`
	ReferenceID   string                `json:"reference_id"`
	BillingDetail *client.BillingDetail `json:"billing_detail,omitempty"`
}

func NewClientResponse(c *client.Client, detail *client.BillingDetail) *ClientResponse {
	return &ClientResponse{
		Client:        c,
		Type:          c.Type(),
		Currency:      c.Currency(),
		ReferenceID:   c.ReferenceID(),
		BillingDetail: detail,
	}
}

// ListClientsResponse represents the response for listing clients
type ListClientsResponse = types.ListResponse[*ClientResponse]

// UpdateBillingDetailRequest sets how a client is billed. The billing day
// range is checked by the service so that it reports a configuration error.
type UpdateBillingDetailRequest struct {
	ServiceRate *decimal.Decimal `json:"service_rate"`
	BillingDay  *int             `json:"billing_day"`
}

func (r *UpdateBillingDetailRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CreateContactRequest struct {
	Name  string                  `json:"name" validate:"required,max=255"`
	Email string                  `json:"email" validate:"required,email"`
	Phone string                  `json:"phone" validate:"omitempty,max=30"`
	Type  types.ContactPersonType `json:"type" validate:"required"`
}

func (r *CreateContactRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

func (r *CreateContactRequest) ToContactPerson(ctx context.Context, clientID string) *client.ContactPerson {
	return &client.ContactPerson{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTACT),
		ClientID:  clientID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Type:      r.Type,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// MailRecipientsResponse holds comma separated addresses for an invoice mail
type MailRecipientsResponse struct {
	To  string `json:"to"`
	CC  string `json:"cc"`
	BCC string `json:"bcc"`
}

type InvoiceReadyClientsResponse struct {
	Items []*ClientResponse `json:"items"`
}

// TeamMemberEffort is the billable effort of one person for a client
type TeamMemberEffort struct {
	UserID   string          `json:"user_id"`
	Name     string          `json:"name"`
	Nickname string          `json:"nickname"`
	Hours    decimal.Decimal `json:"hours"`
}

type TeamMemberEffortsResponse struct {
	ClientID    string             `json:"client_id"`
	StartDate   types.Date         `json:"start_date"`
	EndDate     types.Date         `json:"end_date"`
	TeamMembers []TeamMemberEffort `json:"team_members"`
}

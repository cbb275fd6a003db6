package client

import (
	"fmt"
	"strings"

	"github.com/opsdesk/portal/internal/types"
	"github.com/shopspring/decimal"
)

// Client is an organisation the company bills for services
type Client struct {
	// ID is the unique identifier for the client
	ID string `db:"id" json:"id"`

	// ReferenceNumber is a sequential number used in invoice numbers
	ReferenceNumber int64 `db:"reference_number" json:"reference_number"`

	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`

	// CountryCode is the ISO 3166-1 alpha-2 country of the billing address.
	// Nil when the client has no address on file.
	CountryCode *string `db:"country_code" json:"country_code"`

	KeyAccountManagerID  *string `db:"key_account_manager_id" json:"key_account_manager_id"`
	IsChannelPartner     bool    `db:"is_channel_partner" json:"is_channel_partner"`
	ChannelPartnerID     *string `db:"channel_partner_id" json:"channel_partner_id"`
	ParentOrganisationID *string `db:"parent_organisation_id" json:"parent_organisation_id"`

	types.BaseModel
}

// HasAddress reports whether a billing country is known
func (c *Client) HasAddress() bool {
	return c.CountryCode != nil && strings.TrimSpace(*c.CountryCode) != ""
}

// Type is indian or international, empty when the client has no address
func (c *Client) Type() types.ClientType {
	if !c.HasAddress() {
		return ""
	}
	if types.IsDomesticCountry(*c.CountryCode) {
		return types.ClientTypeIndian
	}
	return types.ClientTypeInternational
}

// IsDomestic reports whether domestic tax applies to the client
func (c *Client) IsDomestic() bool {
	return c.Type() == types.ClientTypeIndian
}

// Currency is derived from the country and never stored
func (c *Client) Currency() string {
	if c.IsDomestic() {
		return types.CurrencyINR
	}
	return types.CurrencyUSD
}

// ReferenceID is the zero padded reference number used in invoice numbers
func (c *Client) ReferenceID() string {
	return fmt.Sprintf("%03d", c.ReferenceNumber)
}

// BillingDetail holds how a client is billed
type BillingDetail struct {
	ID       string `db:"id" json:"id"`
	ClientID string `db:"client_id" json:"client_id"`

	// ServiceRate is the hourly rate in the client's currency; nil until configured
	ServiceRate *decimal.Decimal `db:"service_rate" json:"service_rate"`

	// BillingDay is the day of month the billing cycle rolls over on; nil
	// means the client is billed per calendar month
	BillingDay *int `db:"billing_day" json:"billing_day"`

	types.BaseModel
}

// ContactPerson is someone at the client who receives invoice mails
type ContactPerson struct {
	ID       string                  `db:"id" json:"id"`
	ClientID string                  `db:"client_id" json:"client_id"`
	Name     string                  `db:"name" json:"name"`
	Email    string                  `db:"email" json:"email"`
	Phone    string                  `db:"phone" json:"phone"`
	Type     types.ContactPersonType `db:"type" json:"type"`

	types.BaseModel
}

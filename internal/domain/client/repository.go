package client

import (
	"context"

	"github.com/opsdesk/portal/internal/types"
)

// Repository defines the interface for client data access
type Repository interface {
	Create(ctx context.Context, client *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, filter *types.ClientFilter) ([]*Client, error)
	Count(ctx context.Context, filter *types.ClientFilter) (int, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error

	// GetBillingDetail returns ErrNotFound when the client has never been configured
	GetBillingDetail(ctx context.Context, clientID string) (*BillingDetail, error)
	UpsertBillingDetail(ctx context.Context, detail *BillingDetail) error

	ListContacts(ctx context.Context, clientID string, contactType types.ContactPersonType) ([]*ContactPerson, error)
	AddContact(ctx context.Context, contact *ContactPerson) error
}

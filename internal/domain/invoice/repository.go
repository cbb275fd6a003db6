package invoice

import (
	"context"

	"github.com/opsdesk/portal/internal/types"
)

// Repository defines the interface for invoice data access
type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	// CountForClientInMonth counts the invoices sent to a client in the given
	// month, deleted ones included, since their numbers stay taken
	CountForClientInMonth(ctx context.Context, clientID string, year int, month int) (int, error)
	// ClientIDsInvoicedInMonth returns the clients that were sent an invoice in the month
	ClientIDsInvoicedInMonth(ctx context.Context, year int, month int) ([]string, error)
}

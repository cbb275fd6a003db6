package testutil

import (
	"context"

	"github.com/opsdesk/portal/internal/domain/invoice"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	if inv.ProjectID != nil {
		cp.ProjectID = lo.ToPtr(*inv.ProjectID)
	}
	return &cp
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || inv.Status == types.StatusDeleted {
		return nil, ierr.NewError("invoice not found").
			WithHint("invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	var qf interface{}
	if filter != nil {
		qf = queryFilter(filter.QueryFilter)
	}
	items, err := s.InMemoryStore.List(ctx, qf, func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		if filter == nil {
			return inv.Status != types.StatusDeleted
		}
		if !matchesStatus(inv.Status, filter.QueryFilter) {
			return false
		}
		if filter.ClientID != "" && inv.ClientID != filter.ClientID {
			return false
		}
		if filter.Year != 0 && inv.SentOn.Year() != filter.Year {
			return false
		}
		if filter.Currency != "" && inv.Currency != filter.Currency {
			return false
		}
		return true
	}, func(i, j *invoice.Invoice) bool {
		if i.SentOn.Equal(j.SentOn) {
			return i.ID < j.ID
		}
		return i.SentOn.After(j.SentOn)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice { return copyInvoice(inv) }), nil
}

func inMonth(inv *invoice.Invoice, year, month int) bool {
	return inv.SentOn.Year() == year &&
		int(inv.SentOn.Month()) == month
}

func (s *InMemoryInvoiceStore) CountForClientInMonth(ctx context.Context, clientID string, year int, month int) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.ClientID == clientID && inMonth(inv, year, month)
	})
}

func (s *InMemoryInvoiceStore) ClientIDsInvoicedInMonth(ctx context.Context, year int, month int) ([]string, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.Status != types.StatusDeleted && inMonth(inv, year, month)
	}, nil)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(lo.Map(items, func(inv *invoice.Invoice, _ int) string { return inv.ClientID })), nil
}

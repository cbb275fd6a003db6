package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/opsdesk/portal/internal/domain/client"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]

	mu       sync.RWMutex
	billing  map[string]*client.BillingDetail
	contacts []*client.ContactPerson
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
		billing:       make(map[string]*client.BillingDetail),
	}
}

func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func copyBillingDetail(d *client.BillingDetail) *client.BillingDetail {
	if d == nil {
		return nil
	}
	cp := *d
	if d.ServiceRate != nil {
		cp.ServiceRate = lo.ToPtr(*d.ServiceRate)
	}
	if d.BillingDay != nil {
		cp.BillingDay = lo.ToPtr(*d.BillingDay)
	}
	return &cp
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	if c.ReferenceNumber == 0 {
		n, _ := s.InMemoryStore.Count(ctx, nil, nil)
		c.ReferenceNumber = int64(n + 1)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.Status == types.StatusDeleted {
		return nil, ierr.NewError("client not found").
			WithHint("client not found").
			Mark(ierr.ErrNotFound)
	}
	return copyClient(c), nil
}

func clientFilterFn(filter *types.ClientFilter) FilterFunc[*client.Client] {
	return func(ctx context.Context, c *client.Client, _ interface{}) bool {
		if filter == nil {
			return c.Status != types.StatusDeleted
		}
		if !matchesStatus(c.Status, filter.QueryFilter) {
			return false
		}
		if len(filter.ClientIDs) > 0 && !lo.Contains(filter.ClientIDs, c.ID) {
			return false
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			return false
		}
		if filter.KeyAccountManagerID != "" && lo.FromPtr(c.KeyAccountManagerID) != filter.KeyAccountManagerID {
			return false
		}
		return true
	}
}

func clientSortFn(i, j *client.Client) bool {
	if i.CreatedAt.Equal(j.CreatedAt) {
		return i.ID < j.ID
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryClientStore) List(ctx context.Context, filter *types.ClientFilter) ([]*client.Client, error) {
	var qf interface{}
	if filter != nil {
		qf = queryFilter(filter.QueryFilter)
	}
	items, err := s.InMemoryStore.List(ctx, qf, clientFilterFn(filter), clientSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(c *client.Client, _ int) *client.Client { return copyClient(c) }), nil
}

func (s *InMemoryClientStore) Count(ctx context.Context, filter *types.ClientFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, clientFilterFn(filter))
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Update(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id string) error {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted := copyClient(c)
	deleted.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, deleted)
}

func (s *InMemoryClientStore) GetBillingDetail(ctx context.Context, clientID string) (*client.BillingDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.billing[clientID]
	if !ok {
		return nil, ierr.NewError("billing detail not found").
			WithHint("billing detail not found").
			Mark(ierr.ErrNotFound)
	}
	return copyBillingDetail(d), nil
}

func (s *InMemoryClientStore) UpsertBillingDetail(ctx context.Context, d *client.BillingDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.billing[d.ClientID]; ok {
		cp := copyBillingDetail(d)
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
		cp.CreatedBy = existing.CreatedBy
		s.billing[d.ClientID] = cp
		return nil
	}
	s.billing[d.ClientID] = copyBillingDetail(d)
	return nil
}

func (s *InMemoryClientStore) ListContacts(ctx context.Context, clientID string, contactType types.ContactPersonType) ([]*client.ContactPerson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.FilterMap(s.contacts, func(c *client.ContactPerson, _ int) (*client.ContactPerson, bool) {
		if c.ClientID != clientID || c.Status == types.StatusDeleted {
			return nil, false
		}
		if contactType != "" && c.Type != contactType {
			return nil, false
		}
		cp := *c
		return &cp, true
	}), nil
}

func (s *InMemoryClientStore) AddContact(ctx context.Context, c *client.ContactPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.ContainsBy(s.contacts, func(existing *client.ContactPerson) bool { return existing.ID == c.ID }) {
		return ierr.NewError("contact person already exists").
			WithHint("contact person already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	cp := *c
	s.contacts = append(s.contacts, &cp)
	return nil
}

// Clear removes clients, billing details and contacts
func (s *InMemoryClientStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billing = make(map[string]*client.BillingDetail)
	s.contacts = nil
}

package service

import (
	"context"
	"sort"
	"strings"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/cache"
	"github.com/opsdesk/portal/internal/domain/billing"
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/domain/project"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/interfaces"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ClientService = interfaces.ClientService

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{
		ServiceParams: params,
	}
}

func (s *clientService) billing() *billingService {
	return &billingService{ServiceParams: s.ServiceParams}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient(ctx)
	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created client",
		"client_id", c.ID,
		"reference_number", c.ReferenceNumber,
		"type", c.Type(),
	)

	return dto.NewClientResponse(c, nil), nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	if id == "" {
		return nil, ierr.NewError("client_id is required").
			WithHint("Client ID is required").
			Mark(ierr.ErrValidation)
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail, err := s.billing().getBillingDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.ID == "" {
		detail = nil
	}

	return dto.NewClientResponse(c, detail), nil
}

func (s *clientService) GetClients(ctx context.Context, filter *types.ClientFilter) (*dto.ListClientsResponse, error) {
	if filter == nil {
		filter = types.NewClientFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation)
	}

	clients, err := s.ClientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ClientRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(clients, func(c *client.Client, _ int) *dto.ClientResponse {
		return dto.NewClientResponse(c, nil)
	})

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(c)
	c.Touch(ctx, s.Clock.Now())

	if err := s.ClientRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c, nil), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.ClientRepo.Get(ctx, id); err != nil {
		return err
	}

	if err := s.ClientRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixBillingDetail, id))
	s.Logger.Infow("deleted client", "client_id", id)
	return nil
}

// UpdateBillingDetail replaces the rate and billing day of a client. A nil
// billing day switches the client to calendar month billing.
func (s *clientService) UpdateBillingDetail(ctx context.Context, clientID string, req dto.UpdateBillingDetailRequest) (*client.BillingDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.BillingDay != nil {
		if err := billing.ValidateBillingDay(*req.BillingDay); err != nil {
			return nil, err
		}
	}
	if req.ServiceRate != nil && req.ServiceRate.LessThan(decimal.Zero) {
		return nil, ierr.NewError("negative service rate").
			WithHint("Service rate cannot be negative").
			WithReportableDetails(map[string]any{
				"service_rate": req.ServiceRate.String(),
			}).
			Mark(ierr.ErrInvalidConfiguration)
	}

	if _, err := s.ClientRepo.Get(ctx, clientID); err != nil {
		return nil, err
	}

	detail, err := s.ClientRepo.GetBillingDetail(ctx, clientID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		detail = &client.BillingDetail{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_DETAIL),
			ClientID:  clientID,
			BaseModel: types.GetDefaultBaseModel(ctx),
		}
	}

	detail.ServiceRate = req.ServiceRate
	detail.BillingDay = req.BillingDay
	detail.Touch(ctx, s.Clock.Now())

	if err := s.ClientRepo.UpsertBillingDetail(ctx, detail); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixBillingDetail, clientID))

	s.Logger.Infow("updated billing detail",
		"client_id", clientID,
		"billing_day", lo.FromPtr(detail.BillingDay),
		"has_rate", detail.ServiceRate != nil,
	)

	return detail, nil
}

func (s *clientService) AddContact(ctx context.Context, clientID string, req dto.CreateContactRequest) (*client.ContactPerson, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ClientRepo.Get(ctx, clientID); err != nil {
		return nil, err
	}

	contact := req.ToContactPerson(ctx, clientID)
	if err := s.ClientRepo.AddContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ListInvoiceReady returns the active clients that have not been sent an
// invoice this month and whose billing day has been reached. Clients billed
// per calendar month have no billing day and are never listed.
func (s *clientService) ListInvoiceReady(ctx context.Context) (*dto.InvoiceReadyClientsResponse, error) {
	today := s.Clock.Today()

	invoiced, err := s.InvoiceRepo.ClientIDsInvoicedInMonth(ctx, today.Year(), int(today.Month()))
	if err != nil {
		return nil, err
	}

	filter := types.NewNoLimitClientFilter()
	filter.Status = lo.ToPtr(types.StatusActive)
	clients, err := s.ClientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	billingSvc := s.billing()
	items := make([]*dto.ClientResponse, 0)
	for _, c := range clients {
		if lo.Contains(invoiced, c.ID) {
			continue
		}

		detail, err := billingSvc.getBillingDetail(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if detail.BillingDay == nil || *detail.BillingDay > today.Day() {
			continue
		}
		items = append(items, dto.NewClientResponse(c, detail))
	}

	return &dto.InvoiceReadyClientsResponse{Items: items}, nil
}

// GetMailRecipients builds the address lists of an invoice mail. Primary
// contacts receive the mail, falling back to the client's own address.
func (s *clientService) GetMailRecipients(ctx context.Context, clientID string) (*dto.MailRecipientsResponse, error) {
	c, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	contacts, err := s.ClientRepo.ListContacts(ctx, clientID, "")
	if err != nil {
		return nil, err
	}

	emailsOf := func(contactType types.ContactPersonType) []string {
		return lo.FilterMap(contacts, func(cp *client.ContactPerson, _ int) (string, bool) {
			return cp.Email, cp.Type == contactType && cp.Email != ""
		})
	}

	to := emailsOf(types.ContactPersonTypePrimary)
	if len(to) == 0 && c.Email != "" {
		to = []string{c.Email}
	}

	var cc []string
	if s.Config.Invoice.MailCC != "" {
		cc = append(cc, s.Config.Invoice.MailCC)
	}
	cc = append(cc, emailsOf(types.ContactPersonTypeSecondary)...)

	return &dto.MailRecipientsResponse{
		To:  strings.Join(lo.Uniq(to), ","),
		CC:  strings.Join(lo.Uniq(cc), ","),
		BCC: strings.Join(lo.Uniq(emailsOf(types.ContactPersonTypeTertiary)), ","),
	}, nil
}

// GetTeamMemberEfforts reports the billable hours each person logged on the
// client level projects of a client in a term. People without hours are left out.
func (s *clientService) GetTeamMemberEfforts(ctx context.Context, clientID string, monthsBack *int) (*dto.TeamMemberEffortsResponse, error) {
	if monthsBack != nil && *monthsBack < 0 {
		return nil, ierr.NewError("negative months back").
			WithHint("Months back cannot be negative").
			Mark(ierr.ErrValidation)
	}

	if _, err := s.ClientRepo.Get(ctx, clientID); err != nil {
		return nil, err
	}

	billingSvc := s.billing()
	detail, err := billingSvc.getBillingDetail(ctx, clientID)
	if err != nil {
		return nil, err
	}

	period, err := billingSvc.resolveClientPeriod(detail, monthsBack)
	if err != nil {
		return nil, err
	}

	resp := &dto.TeamMemberEffortsResponse{
		ClientID:    clientID,
		StartDate:   period.Start,
		EndDate:     period.End,
		TeamMembers: []dto.TeamMemberEffort{},
	}

	projects, err := billingSvc.listClientLevelProjects(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return resp, nil
	}

	members, err := s.TeamMemberRepo.ListByProjects(ctx, lo.Map(projects, func(p *project.Project, _ int) string { return p.ID }))
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return resp, nil
	}

	userByMember := lo.SliceToMap(members, func(m *project.TeamMember) (string, string) {
		return m.ID, m.UserID
	})

	efforts, err := s.EffortRepo.ListInRange(ctx, lo.Keys(userByMember), period.Start, period.End)
	if err != nil {
		return nil, err
	}

	hoursByUser := make(map[string]decimal.Decimal)
	for _, e := range efforts {
		uid := userByMember[e.TeamMemberID]
		hoursByUser[uid] = hoursByUser[uid].Add(e.ActualEffort)
	}

	for userID, hours := range hoursByUser {
		if hours.IsZero() {
			continue
		}
		u, err := s.UserRepo.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp.TeamMembers = append(resp.TeamMembers, dto.TeamMemberEffort{
			UserID:   u.ID,
			Name:     u.Name,
			Nickname: u.Nickname,
			Hours:    hours,
		})
	}

	sort.Slice(resp.TeamMembers, func(i, j int) bool {
		return resp.TeamMembers[i].Name < resp.TeamMembers[j].Name
	})

	return resp, nil
}

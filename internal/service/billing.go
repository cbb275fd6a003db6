package service

import (
	"context"

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

type BillingService = interfaces.BillingService

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

// clientBill is one billing computation for a client, or for a single
// project of the client when Project is set
type clientBill struct {
	Client  *client.Client
	Detail  *client.BillingDetail
	Project *project.Project
	Period  billing.Period
	Summary *billing.Summary
}

func (s *billingService) GetClientBilling(ctx context.Context, clientID string, req dto.GetClientBillingRequest) (*dto.ClientBillingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bill, err := s.computeClientBill(ctx, clientID, req.ProjectID, req.MonthsBack)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClientBillingResponse{
		ClientID:    bill.Client.ID,
		ProjectID:   req.ProjectID,
		Currency:    bill.Client.Currency(),
		IsDomestic:  bill.Client.IsDomestic(),
		StartDate:   bill.Period.Start,
		EndDate:     bill.Period.End,
		WorkingDays: bill.Period.WorkingDays(),
		ServiceRate: lo.FromPtr(bill.Detail.ServiceRate),
		Lines:       bill.Summary.Lines,
		TotalHours:  bill.Summary.TotalHours,
		BaseAmount:  bill.Summary.BaseAmount,
		TaxAmount:   bill.Summary.TaxAmount,
		TotalAmount: bill.Summary.Total,
	}
	return resp, nil
}

func (s *billingService) ResolvePeriod(ctx context.Context, req dto.ResolvePeriodRequest) (*billing.Period, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reference := req.Reference
	if reference.IsZero() {
		reference = s.Clock.Today()
	}

	period, err := billing.ResolvePeriod(reference, req.BillingDay, s.monthsBack(req.MonthsBack))
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// computeClientBill resolves the period monthsBack terms before today and
// prices the effort logged in it. Without projectID every client level
// project of the client is billed.
func (s *billingService) computeClientBill(ctx context.Context, clientID, projectID string, monthsBack *int) (*clientBill, error) {
	c, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	detail, err := s.getBillingDetail(ctx, clientID)
	if err != nil {
		return nil, err
	}

	period, err := s.resolveClientPeriod(detail, monthsBack)
	if err != nil {
		return nil, err
	}

	bill := &clientBill{
		Client: c,
		Detail: detail,
		Period: period,
	}

	var projects []*project.Project
	if projectID != "" {
		p, err := s.ProjectRepo.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if p.ClientID != clientID {
			return nil, ierr.NewError("project does not belong to client").
				WithHint("The project is not one of the client's projects").
				WithReportableDetails(map[string]any{
					"client_id":  clientID,
					"project_id": projectID,
				}).
				Mark(ierr.ErrValidation)
		}
		bill.Project = p
		projects = []*project.Project{p}
	} else {
		projects, err = s.listClientLevelProjects(ctx, clientID)
		if err != nil {
			return nil, err
		}
	}

	hours, err := s.projectHours(ctx, projects, period)
	if err != nil {
		return nil, err
	}

	calcCfg, err := billing.ConfigFrom(s.Config.Billing)
	if err != nil {
		return nil, err
	}

	summary, err := billing.NewCalculator(calcCfg).Compute(hours, detail.ServiceRate, c.IsDomestic())
	if err != nil {
		s.Logger.Warnw("client cannot be billed", "client_id", clientID, "error", err)
		return nil, err
	}
	bill.Summary = summary

	s.Logger.Debugw("computed client bill",
		"client_id", clientID,
		"project_id", projectID,
		"period", period.String(),
		"total_hours", summary.TotalHours.String(),
		"total_amount", summary.Total.String(),
	)

	return bill, nil
}

func (s *billingService) resolveClientPeriod(detail *client.BillingDetail, monthsBack *int) (billing.Period, error) {
	return billing.ResolvePeriod(s.Clock.Today(), detail.BillingDay, s.monthsBack(monthsBack))
}

// monthsBack falls back to the configured default term when unset
func (s *billingService) monthsBack(monthsBack *int) int {
	if monthsBack != nil {
		return *monthsBack
	}
	return s.Config.Billing.DefaultMonthsBack
}

func (s *billingService) listClientLevelProjects(ctx context.Context, clientID string) ([]*project.Project, error) {
	filter := types.NewNoLimitProjectFilter()
	filter.ClientID = clientID
	filter.BillingLevel = types.BillingLevelClient
	filter.Order = lo.ToPtr(types.OrderAsc)
	return s.ProjectRepo.List(ctx, filter)
}

// projectHours sums the actual effort of every team member of the projects
// inside the period. Projects without effort are billed zero hours.
func (s *billingService) projectHours(ctx context.Context, projects []*project.Project, period billing.Period) ([]billing.ProjectHours, error) {
	if len(projects) == 0 {
		return []billing.ProjectHours{}, nil
	}

	projectIDs := lo.Map(projects, func(p *project.Project, _ int) string { return p.ID })
	members, err := s.TeamMemberRepo.ListByProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	hoursByProject := make(map[string]decimal.Decimal, len(projects))
	if len(members) > 0 {
		projectByMember := lo.SliceToMap(members, func(m *project.TeamMember) (string, string) {
			return m.ID, m.ProjectID
		})

		efforts, err := s.EffortRepo.ListInRange(ctx, lo.Keys(projectByMember), period.Start, period.End)
		if err != nil {
			return nil, err
		}

		for _, e := range efforts {
			pid := projectByMember[e.TeamMemberID]
			hoursByProject[pid] = hoursByProject[pid].Add(e.ActualEffort)
		}
	}

	hours := make([]billing.ProjectHours, 0, len(projects))
	for _, p := range projects {
		hours = append(hours, billing.ProjectHours{
			ProjectID: p.ID,
			Name:      p.Name,
			Hours:     hoursByProject[p.ID],
		})
	}
	return hours, nil
}

// getBillingDetail returns the cached billing detail of a client. A client
// that was never configured gets an empty detail: no rate and calendar
// month billing.
func (s *billingService) getBillingDetail(ctx context.Context, clientID string) (*client.BillingDetail, error) {
	key := cache.GenerateKey(cache.PrefixBillingDetail, clientID)
	if cached, found := s.Cache.Get(ctx, key); found {
		if detail, ok := cached.(*client.BillingDetail); ok {
			return detail, nil
		}
	}

	detail, err := s.ClientRepo.GetBillingDetail(ctx, clientID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		detail = &client.BillingDetail{ClientID: clientID}
	}

	s.Cache.Set(ctx, key, detail, s.Config.Cache.TTL)
	return detail, nil
}

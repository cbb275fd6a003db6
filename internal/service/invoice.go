package service

import (
	"context"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/invoice"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/interfaces"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// reportAveragePlaces is the precision of averaged report columns
const reportAveragePlaces int32 = 4

type InvoiceService = interfaces.InvoiceService

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

// CreateInvoice raises an invoice for the billing computation of a client
// term. Clients without a service rate cannot be invoiced.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	billingSvc := &billingService{ServiceParams: s.ServiceParams}
	bill, err := billingSvc.computeClientBill(ctx, req.ClientID, lo.FromPtr(req.ProjectID), req.MonthsBack)
	if err != nil {
		return nil, err
	}

	sentOn := s.Clock.Today()
	if req.SentOn != nil && !req.SentOn.IsZero() {
		sentOn = *req.SentOn
	}
	if req.DueOn != nil && req.DueOn.Before(sentOn) {
		return nil, ierr.NewError("due date before sent date").
			WithHint("The due date cannot be before the date the invoice is sent").
			WithReportableDetails(map[string]any{
				"sent_on": sentOn.String(),
				"due_on":  req.DueOn.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:      bill.Client.ID,
		InvoiceNumber: req.InvoiceNumber,
		Currency:      bill.Client.Currency(),
		Amount:        bill.Summary.BaseAmount,
		GST:           bill.Summary.TaxAmount,
		TDS:           decimal.Zero,
		AmountPaid:    decimal.Zero,
		BankCharges:   decimal.Zero,
		PeriodStart:   bill.Period.Start,
		PeriodEnd:     bill.Period.End,
		SentOn:        sentOn,
		DueOn:         req.DueOn,
		InvoiceStatus: types.InvoiceStatusSent,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if bill.Project != nil {
		inv.ProjectID = lo.ToPtr(bill.Project.ID)
	}
	if inv.Currency == types.CurrencyINR {
		inv.ConversionRate = decimal.NewFromInt(1)
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if inv.InvoiceNumber == "" {
			number, err := s.nextNumber(txCtx, bill.Client.ID, bill.Client.ReferenceID(), sentOn)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
		}
		return s.InvoiceRepo.Create(txCtx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"client_id", inv.ClientID,
		"period", bill.Period.String(),
		"amount", inv.Amount.String(),
		"gst", inv.GST.String(),
	)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

// NextInvoiceNumber previews the number an invoice sent to the client today would get
func (s *invoiceService) NextInvoiceNumber(ctx context.Context, clientID string) (*dto.NextInvoiceNumberResponse, error) {
	c, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	number, err := s.nextNumber(ctx, c.ID, c.ReferenceID(), s.Clock.Today())
	if err != nil {
		return nil, err
	}

	return &dto.NextInvoiceNumberResponse{
		ClientID:      c.ID,
		InvoiceNumber: number,
	}, nil
}

func (s *invoiceService) nextNumber(ctx context.Context, clientID, clientRef string, sentOn types.Date) (string, error) {
	count, err := s.InvoiceRepo.CountForClientInMonth(ctx, clientID, sentOn.Year(), int(sentOn.Month()))
	if err != nil {
		return "", err
	}
	return invoice.FormatNumber(s.Config.Invoice.NumberPrefix, clientRef, sentOn, count+1), nil
}

// GetYearlyReport lists the invoices sent in a year with a totals row
func (s *invoiceService) GetYearlyReport(ctx context.Context, req dto.InvoiceReportRequest) (*dto.InvoiceReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceReportResponse{
		Year:     req.Year,
		Currency: req.Currency,
		Invoices: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return dto.NewInvoiceResponse(inv)
		}),
		Totals: reportTotals(invoices),
	}, nil
}

// reportTotals sums the money columns. Rupee amounts are only summed for
// foreign currency invoices and conversion columns are averaged.
func reportTotals(invoices []*invoice.Invoice) dto.InvoiceReportTotals {
	totals := dto.InvoiceReportTotals{
		Amount:                    decimal.Zero,
		GST:                       decimal.Zero,
		TDS:                       decimal.Zero,
		AmountInINR:               decimal.Zero,
		AmountPaid:                decimal.Zero,
		BankCharges:               decimal.Zero,
		AverageConversionRate:     decimal.Zero,
		AverageConversionRateDiff: decimal.Zero,
	}
	if len(invoices) == 0 {
		return totals
	}

	rateSum, diffSum := decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		totals.Amount = totals.Amount.Add(inv.Amount)
		totals.GST = totals.GST.Add(inv.GST)
		totals.TDS = totals.TDS.Add(inv.TDS)
		totals.AmountPaid = totals.AmountPaid.Add(inv.AmountPaid)
		totals.BankCharges = totals.BankCharges.Add(inv.BankCharges)
		if inv.Currency != types.CurrencyINR {
			totals.AmountInINR = totals.AmountInINR.Add(inv.AmountInINR())
		}
		rateSum = rateSum.Add(inv.ConversionRate)
		diffSum = diffSum.Add(inv.ConversionRateDiff)
	}

	n := decimal.NewFromInt(int64(len(invoices)))
	totals.AverageConversionRate = rateSum.DivRound(n, reportAveragePlaces)
	totals.AverageConversionRateDiff = diffSum.DivRound(n, reportAveragePlaces)
	return totals
}

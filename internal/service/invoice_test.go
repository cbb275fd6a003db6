package service

import (
	"testing"
	"time"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/invoice"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/testutil"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	c := seedClient(&s.BaseServiceTestSuite, "Acme", "IN")
	seedBillingDetail(&s.BaseServiceTestSuite, c.ID, "100", nil)
	p := seedProject(&s.BaseServiceTestSuite, c.ID, "Website", types.BillingLevelClient)
	u := seedUser(&s.BaseServiceTestSuite, "Meera", "meera")
	seedEffort(&s.BaseServiceTestSuite, seedMember(&s.BaseServiceTestSuite, p.ID, u.ID).ID, types.NewDate(2024, time.February, 12), "12.5", "12.5")

	next, err := s.service.NextInvoiceNumber(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal("001-202403-01", next.InvoiceNumber)

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: c.ID,
		DueOn:    lo.ToPtr(types.NewDate(2024, time.March, 30)),
	})
	s.Require().NoError(err)
	s.Equal(1, s.GetDB().TxCount())
	s.Equal("001-202403-01", resp.InvoiceNumber)
	s.Equal(types.CurrencyINR, resp.Currency)
	s.Equal("1250.00", resp.Amount.StringFixed(2))
	s.Equal("225.00", resp.GST.StringFixed(2))
	s.Equal("1250.00", resp.AmountInINR.StringFixed(2))
	s.Equal(types.NewDate(2024, time.February, 1), resp.PeriodStart)
	s.Equal(types.NewDate(2024, time.February, 29), resp.PeriodEnd)
	s.Equal(types.NewDate(2024, time.March, 15), resp.SentOn)
	s.False(resp.IsProjectLevel())

	stored, err := s.service.GetInvoice(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal(resp.InvoiceNumber, stored.InvoiceNumber)

	next, err = s.service.NextInvoiceNumber(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal("001-202403-02", next.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestNextInvoiceNumber_SkipsDeletedNumbers() {
	c := seedClient(&s.BaseServiceTestSuite, "Acme", "IN")

	deleted := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:      c.ID,
		InvoiceNumber: "001-202403-01",
		InvoiceStatus: types.InvoiceStatusSent,
		Currency:      types.CurrencyINR,
		SentOn:        types.NewDate(2024, time.March, 4),
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	deleted.Status = types.StatusDeleted
	s.Require().NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), deleted))

	next, err := s.service.NextInvoiceNumber(s.GetContext(), c.ID)
	s.Require().NoError(err)
	s.Equal("001-202403-02", next.InvoiceNumber)

	months, err := s.GetStores().InvoiceRepo.ClientIDsInvoicedInMonth(s.GetContext(), 2024, 3)
	s.Require().NoError(err)
	s.Empty(months)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_ProjectLevelWithPrefix() {
	s.GetConfig().Invoice.NumberPrefix = "OD-"
	defer func() { s.GetConfig().Invoice.NumberPrefix = "" }()

	c := seedClient(&s.BaseServiceTestSuite, "Globex", "US")
	seedBillingDetail(&s.BaseServiceTestSuite, c.ID, "50", lo.ToPtr(5))
	p := seedProject(&s.BaseServiceTestSuite, c.ID, "Migration", types.BillingLevelProject)

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID:  c.ID,
		ProjectID: lo.ToPtr(p.ID),
		SentOn:    lo.ToPtr(types.NewDate(2024, time.April, 2)),
	})
	s.Require().NoError(err)
	s.True(resp.IsProjectLevel())
	s.Equal(p.ID, *resp.ProjectID)
	s.Equal("OD-001-202404-01", resp.InvoiceNumber)
	s.Equal(types.CurrencyUSD, resp.Currency)
	s.True(resp.GST.IsZero())
	s.Equal(types.NewDate(2024, time.February, 5), resp.PeriodStart)
	s.Equal(types.NewDate(2024, time.March, 4), resp.PeriodEnd)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_Errors() {
	noRate := seedClient(&s.BaseServiceTestSuite, "No Rate", "IN")
	configured := seedClient(&s.BaseServiceTestSuite, "Configured", "IN")
	seedBillingDetail(&s.BaseServiceTestSuite, configured.ID, "10", nil)

	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: noRate.ID})
	s.Require().Error(err)
	s.True(ierr.IsConfiguration(err))

	_, err = s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: configured.ID,
		DueOn:    lo.ToPtr(types.NewDate(2024, time.March, 1)),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{})
	s.True(ierr.IsValidation(err))

	count, err := s.GetStores().InvoiceRepo.CountForClientInMonth(s.GetContext(), noRate.ID, 2024, 3)
	s.Require().NoError(err)
	s.Zero(count)
	s.Zero(s.GetDB().TxCount())
}

func (s *InvoiceServiceSuite) TestGetYearlyReport() {
	c := seedClient(&s.BaseServiceTestSuite, "Acme", "IN")
	d := decimal.RequireFromString

	seedInvoice(&s.BaseServiceTestSuite, &invoice.Invoice{
		ClientID: c.ID, Currency: types.CurrencyINR, SentOn: types.NewDate(2023, time.January, 10),
		Amount: d("1000"), GST: d("180"), TDS: d("100"), AmountPaid: d("1080"), ConversionRate: d("1"),
	})
	seedInvoice(&s.BaseServiceTestSuite, &invoice.Invoice{
		ClientID: c.ID, Currency: types.CurrencyUSD, SentOn: types.NewDate(2023, time.May, 3),
		Amount: d("100"), AmountPaid: d("98"), BankCharges: d("2"), ConversionRate: d("80"), ConversionRateDiff: d("0.5"),
	})
	seedInvoice(&s.BaseServiceTestSuite, &invoice.Invoice{
		ClientID: c.ID, Currency: types.CurrencyUSD, SentOn: types.NewDate(2023, time.August, 9),
		Amount: d("200"), AmountPaid: d("195"), BankCharges: d("3"), ConversionRate: d("82"), ConversionRateDiff: d("-0.5"),
	})
	seedInvoice(&s.BaseServiceTestSuite, &invoice.Invoice{
		ClientID: c.ID, Currency: types.CurrencyUSD, SentOn: types.NewDate(2022, time.December, 30),
		Amount: d("999"), ConversionRate: d("79"),
	})

	resp, err := s.service.GetYearlyReport(s.GetContext(), dto.InvoiceReportRequest{Year: 2023})
	s.Require().NoError(err)
	s.Len(resp.Invoices, 3)
	s.Equal("1300", resp.Totals.Amount.String())
	s.Equal("180", resp.Totals.GST.String())
	s.Equal("100", resp.Totals.TDS.String())
	s.Equal("24400", resp.Totals.AmountInINR.String())
	s.Equal("1373", resp.Totals.AmountPaid.String())
	s.Equal("5", resp.Totals.BankCharges.String())
	s.Equal("54.3333", resp.Totals.AverageConversionRate.String())
	s.True(resp.Totals.AverageConversionRateDiff.IsZero())

	resp, err = s.service.GetYearlyReport(s.GetContext(), dto.InvoiceReportRequest{Year: 2023, Currency: types.CurrencyUSD})
	s.Require().NoError(err)
	s.Len(resp.Invoices, 2)
	s.Equal("81", resp.Totals.AverageConversionRate.String())

	resp, err = s.service.GetYearlyReport(s.GetContext(), dto.InvoiceReportRequest{Year: 2021})
	s.Require().NoError(err)
	s.Empty(resp.Invoices)
	s.True(resp.Totals.Amount.IsZero())

	_, err = s.service.GetYearlyReport(s.GetContext(), dto.InvoiceReportRequest{Year: 1999})
	s.True(ierr.IsValidation(err))

	_, err = s.service.GetYearlyReport(s.GetContext(), dto.InvoiceReportRequest{Year: 2023, Currency: "EUR"})
	s.True(ierr.IsValidation(err))
}

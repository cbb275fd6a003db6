package invoice

import (
	"testing"
	"time"

	"github.com/opsdesk/portal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_AmountInINR(t *testing.T) {
	usd := &Invoice{
		Currency:       types.CurrencyUSD,
		Amount:         decimal.RequireFromString("1250.50"),
		ConversionRate: decimal.RequireFromString("83.1234"),
	}
	assert.Equal(t, "103945.81", usd.AmountInINR().StringFixed(2))

	inr := &Invoice{
		Currency:       types.CurrencyINR,
		Amount:         decimal.RequireFromString("5000"),
		ConversionRate: decimal.RequireFromString("83"),
	}
	assert.True(t, inr.Amount.Equal(inr.AmountInINR()))
}

func TestFormatNumber(t *testing.T) {
	sent := types.NewDate(2024, time.March, 5)
	assert.Equal(t, "007-202403-01", FormatNumber("", "007", sent, 1))
	assert.Equal(t, "INV-042-202403-12", FormatNumber("INV-", "042", sent, 12))
}

package billing

import (
	"testing"

	"github.com/opsdesk/portal/internal/config"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestCalculator_ComputeBillable(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	tests := []struct {
		name     string
		projects []ProjectHours
		rate     *decimal.Decimal
		want     string
	}{
		{
			name: "rounds each project before summing",
			projects: []ProjectHours{
				{ProjectID: "p1", Hours: d("2.001")},
				{ProjectID: "p2", Hours: d("2.001")},
			},
			rate: dp("5"),
			want: "20.02",
		},
		{
			name: "half rounds away from zero",
			projects: []ProjectHours{
				{ProjectID: "p1", Hours: d("0.5")},
			},
			rate: dp("0.01"),
			want: "0.01",
		},
		{
			name: "plain multiplication",
			projects: []ProjectHours{
				{ProjectID: "p1", Hours: d("160")},
				{ProjectID: "p2", Hours: d("12.5")},
			},
			rate: dp("25"),
			want: "4312.5",
		},
		{
			name:     "no projects bills nothing",
			projects: nil,
			rate:     dp("25"),
			want:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeBillable(tt.projects, tt.rate)
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCalculator_ComputeBillable_MissingRate(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	_, err := calc.ComputeBillable([]ProjectHours{{ProjectID: "p1", Hours: d("10")}}, nil)
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))

	_, err = calc.ComputeBillable(nil, dp("-1"))
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidConfiguration(err))
}

func TestCalculator_ComputeTax(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	rate := d("0.18")

	assert.True(t, d("180").Equal(calc.ComputeTax(d("1000"), true, rate)))
	assert.True(t, d("60").Equal(calc.ComputeTax(d("333.33"), true, rate)))
	assert.True(t, decimal.Zero.Equal(calc.ComputeTax(d("1000"), false, rate)))
}

func TestCalculator_Compute(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	projects := []ProjectHours{
		{ProjectID: "p1", Name: "Website", Hours: d("2.001")},
		{ProjectID: "p2", Name: "App", Hours: d("2.001")},
	}

	domestic, err := calc.Compute(projects, dp("5"), true)
	require.NoError(t, err)
	assert.Len(t, domestic.Lines, 2)
	assert.True(t, d("10.01").Equal(domestic.Lines[0].Amount))
	assert.True(t, d("4.002").Equal(domestic.TotalHours))
	assert.True(t, d("20.02").Equal(domestic.BaseAmount))
	assert.True(t, d("3.6").Equal(domestic.TaxAmount))
	assert.True(t, d("23.62").Equal(domestic.Total))

	international, err := calc.Compute(projects, dp("5"), false)
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(international.TaxAmount))
	assert.True(t, international.BaseAmount.Equal(international.Total))
}

func TestConfigFrom(t *testing.T) {
	cfg, err := ConfigFrom(config.BillingConfig{TaxRate: "0.18", RoundingPlaces: 2})
	require.NoError(t, err)
	assert.True(t, d("0.18").Equal(cfg.TaxRate))
	assert.Equal(t, int32(2), cfg.RoundingPlaces)

	_, err = ConfigFrom(config.BillingConfig{TaxRate: "eighteen"})
	assert.True(t, ierr.IsInvalidConfiguration(err))

	_, err = ConfigFrom(config.BillingConfig{TaxRate: "18"})
	assert.True(t, ierr.IsInvalidConfiguration(err))
}

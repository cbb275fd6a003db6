package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingPeriodCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "billing day",
			args: []string{"billing", "period", "--reference", "2024-03-05", "--billing-day", "20", "--months-back", "1"},
			want: "2024-01-20",
		},
		{
			name: "calendar month defaults to previous term",
			args: []string{"billing", "period", "--reference", "2024-02-10"},
			want: "2024-01-01..2024-01-31",
		},
		{
			name: "current calendar month",
			args: []string{"billing", "period", "--reference", "2024-02-10", "--months-back", "0"},
			want: "2024-02-01..2024-02-29",
		},
		{
			name:    "billing day out of range",
			args:    []string{"billing", "period", "--reference", "2024-02-10", "--billing-day", "32"},
			wantErr: true,
		},
		{
			name:    "bad reference",
			args:    []string{"billing", "period", "--reference", "10/02/2024"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periodReference, periodBillingDay, periodMonthsBack = "", 0, 0
			billingPeriodCmd.Flags().Lookup("billing-day").Changed = false
			billingPeriodCmd.Flags().Lookup("months-back").Changed = false

			out := new(bytes.Buffer)
			rootCmd.SetOut(out)
			rootCmd.SetErr(out)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestBillingClock(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Billing.Timezone = "Pacific/Kiritimati"

	clock, err := billingClock(cfg)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)
	assert.Equal(t, "Pacific/Kiritimati", clock.Now().Location().String())
	assert.Equal(t, types.DateOf(time.Now().In(loc)), clock.Today())

	cfg.Billing.Timezone = "Mars/Olympus_Mons"
	_, err = billingClock(cfg)
	assert.Error(t, err)
}

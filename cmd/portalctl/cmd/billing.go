package cmd

import (
	"fmt"
	_ "time/tzdata"

	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/domain/billing"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Billing helpers",
}

var (
	periodReference  string
	periodBillingDay int
	periodMonthsBack int
)

var billingPeriodCmd = &cobra.Command{
	Use:   "period",
	Short: "Resolve a billing period",
	Long: `Prints the billing period a billing day resolves to, months back from
a reference date. Without --billing-day the period is a calendar month.
The reference defaults to today in billing.timezone and --months-back to
billing.default_months_back.`,
	Example: `  portalctl billing period --reference 2024-03-05 --billing-day 20 --months-back 1`,
	RunE:    runBillingPeriod,
}

func init() {
	billingPeriodCmd.Flags().StringVar(&periodReference, "reference", "", "reference date (YYYY-MM-DD), today when empty")
	billingPeriodCmd.Flags().IntVar(&periodBillingDay, "billing-day", 0, "day of month the billing cycle starts on")
	billingPeriodCmd.Flags().IntVar(&periodMonthsBack, "months-back", 0, "number of terms to go back (default billing.default_months_back)")
	billingCmd.AddCommand(billingPeriodCmd)
}

func runBillingPeriod(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	clock, err := billingClock(cfg)
	if err != nil {
		return err
	}

	reference := clock.Today()
	if periodReference != "" {
		d, err := types.ParseDate(periodReference)
		if err != nil {
			return err
		}
		reference = d
	}

	var billingDay *int
	if cmd.Flags().Changed("billing-day") {
		billingDay = lo.ToPtr(periodBillingDay)
	}

	monthsBack := cfg.Billing.DefaultMonthsBack
	if cmd.Flags().Changed("months-back") {
		monthsBack = periodMonthsBack
	}

	period, err := billing.ResolvePeriod(reference, billingDay, monthsBack)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d days, %d working days)\n", period, period.Days(), period.WorkingDays())
	return nil
}

// billingClock reports dates in the configured billing timezone
func billingClock(cfg *config.Configuration) (types.Clock, error) {
	loc, err := cfg.Billing.Location()
	if err != nil {
		return nil, fmt.Errorf("billing timezone: %w", err)
	}
	return types.NewSystemClock(loc), nil
}

package billing

import (
	"fmt"

	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
)

const (
	MinBillingDay = 1
	MaxBillingDay = 31
)

// Period is an inclusive, contiguous range of calendar days billed together.
// It is always derived from a client's billing day and never persisted.
type Period struct {
	Start types.Date `json:"start_date"`
	End   types.Date `json:"end_date"`
}

// Contains reports whether d falls inside the period
func (p Period) Contains(d types.Date) bool {
	return d.Between(p.Start, p.End)
}

// Days returns the number of calendar days in the period
func (p Period) Days() int {
	return p.Start.DaysUntil(p.End) + 1
}

// WorkingDays counts the weekdays (Monday to Friday) in the period
func (p Period) WorkingDays() int {
	count := 0
	for d := p.Start; !d.After(p.End); d = d.AddDays(1) {
		if d.IsWeekday() {
			count++
		}
	}
	return count
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start, p.End)
}

// ValidateBillingDay checks that a configured billing day can be used
func ValidateBillingDay(billingDay int) error {
	if billingDay < MinBillingDay || billingDay > MaxBillingDay {
		return ierr.NewError("billing day out of range").
			WithHintf("Billing day must be between %d and %d, got %d", MinBillingDay, MaxBillingDay, billingDay).
			WithReportableDetails(map[string]any{
				"billing_day": billingDay,
			}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	return nil
}

// ResolvePeriod returns the billing period monthsBack cycles before the one
// containing reference.
//
// Without a billing day the period is the calendar month monthsBack months
// before reference. With a billing day the cycle rolls over on that day of
// every month; days that do not exist in a short month clip to the month's
// last day instead of spilling into the next one.
func ResolvePeriod(reference types.Date, billingDay *int, monthsBack int) (Period, error) {
	if monthsBack < 0 {
		return Period{}, ierr.NewError("negative months back").
			WithHint("Months back cannot be negative").
			WithReportableDetails(map[string]any{
				"months_back": monthsBack,
			}).
			Mark(ierr.ErrValidation)
	}

	if billingDay == nil {
		month := reference.SubMonthsNoOverflow(monthsBack)
		return Period{Start: month.StartOfMonth(), End: month.EndOfMonth()}, nil
	}

	bd := *billingDay
	if err := ValidateBillingDay(bd); err != nil {
		return Period{}, err
	}

	var start, end types.Date
	if day := reference.Day(); day < bd {
		// the cycle has not rolled over yet this month, so it started in
		// the month before
		startBase := reference.SubMonthsNoOverflow(monthsBack + 1)
		start = clipToMonthEnd(startBase.AddDays(bd-day), startBase)

		endBase := reference.SubMonthsNoOverflow(monthsBack)
		end = clipToMonthEnd(endBase.AddDays(bd-day-1), endBase)
	} else {
		startMonth := reference.SubMonthsNoOverflow(monthsBack).StartOfMonth()
		start = clipToMonthEnd(startMonth.AddDays(bd-1), startMonth)

		nextMonth := startMonth.AddMonthsNoOverflow(1)
		end = clipToMonthEnd(nextMonth.AddDays(bd-2), nextMonth)
	}

	if end.Before(start) {
		end = start.EndOfMonth()
	}

	return Period{Start: start, End: end}, nil
}

// clipToMonthEnd caps d at the last day of base's month
func clipToMonthEnd(d, base types.Date) types.Date {
	if eom := base.EndOfMonth(); d.After(eom) {
		return eom
	}
	return d
}

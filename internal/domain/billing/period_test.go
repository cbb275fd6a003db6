package billing

import (
	"testing"
	"time"

	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) types.Date {
	return types.NewDate(y, m, d)
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name       string
		reference  types.Date
		billingDay *int
		monthsBack int
		want       Period
	}{
		{
			name:       "calendar month in a leap year",
			reference:  date(2024, time.March, 15),
			monthsBack: 1,
			want:       Period{Start: date(2024, time.February, 1), End: date(2024, time.February, 29)},
		},
		{
			name:       "calendar month current",
			reference:  date(2024, time.March, 15),
			monthsBack: 0,
			want:       Period{Start: date(2024, time.March, 1), End: date(2024, time.March, 31)},
		},
		{
			name:       "calendar month across year",
			reference:  date(2024, time.January, 31),
			monthsBack: 1,
			want:       Period{Start: date(2023, time.December, 1), End: date(2023, time.December, 31)},
		},
		{
			name:       "before billing day clips start to short february",
			reference:  date(2024, time.March, 10),
			billingDay: lo.ToPtr(30),
			monthsBack: 0,
			want:       Period{Start: date(2024, time.February, 29), End: date(2024, time.March, 29)},
		},
		{
			name:       "on or after billing day",
			reference:  date(2024, time.March, 20),
			billingDay: lo.ToPtr(15),
			monthsBack: 0,
			want:       Period{Start: date(2024, time.March, 15), End: date(2024, time.April, 14)},
		},
		{
			name:       "exactly on billing day",
			reference:  date(2024, time.March, 15),
			billingDay: lo.ToPtr(15),
			monthsBack: 0,
			want:       Period{Start: date(2024, time.March, 15), End: date(2024, time.April, 14)},
		},
		{
			name:       "before billing day one month back",
			reference:  date(2024, time.March, 10),
			billingDay: lo.ToPtr(15),
			monthsBack: 1,
			want:       Period{Start: date(2024, time.January, 15), End: date(2024, time.February, 14)},
		},
		{
			name:       "billing day one is the calendar month",
			reference:  date(2024, time.March, 1),
			billingDay: lo.ToPtr(1),
			monthsBack: 0,
			want:       Period{Start: date(2024, time.March, 1), End: date(2024, time.March, 31)},
		},
		{
			name:       "billing day 31 clips end to february",
			reference:  date(2024, time.February, 15),
			billingDay: lo.ToPtr(31),
			monthsBack: 0,
			want:       Period{Start: date(2024, time.January, 31), End: date(2024, time.February, 29)},
		},
		{
			name:       "billing day 31 on a 31st",
			reference:  date(2024, time.March, 31),
			billingDay: lo.ToPtr(31),
			monthsBack: 0,
			want:       Period{Start: date(2024, time.March, 31), End: date(2024, time.April, 30)},
		},
		{
			name:       "billing day 30 end clips in non leap february",
			reference:  date(2023, time.January, 30),
			billingDay: lo.ToPtr(30),
			monthsBack: 0,
			want:       Period{Start: date(2023, time.January, 30), End: date(2023, time.February, 28)},
		},
		{
			name:       "cycle across new year",
			reference:  date(2024, time.January, 5),
			billingDay: lo.ToPtr(20),
			monthsBack: 0,
			want:       Period{Start: date(2023, time.December, 20), End: date(2024, time.January, 19)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriod(tt.reference, tt.billingDay, tt.monthsBack)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePeriod_Errors(t *testing.T) {
	ref := date(2024, time.March, 15)

	for _, bd := range []int{0, -1, 32, 100} {
		_, err := ResolvePeriod(ref, lo.ToPtr(bd), 1)
		require.Error(t, err, "billing day %d", bd)
		assert.True(t, ierr.IsInvalidConfiguration(err))
	}

	_, err := ResolvePeriod(ref, nil, -1)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = ResolvePeriod(ref, lo.ToPtr(10), -3)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestResolvePeriod_StartNeverAfterEnd(t *testing.T) {
	from := date(2023, time.January, 1)
	to := date(2025, time.December, 31)

	for ref := from; !ref.After(to); ref = ref.AddDays(1) {
		for bd := MinBillingDay; bd <= MaxBillingDay; bd++ {
			for mb := 0; mb <= 3; mb++ {
				p, err := ResolvePeriod(ref, lo.ToPtr(bd), mb)
				require.NoError(t, err)
				if p.Start.After(p.End) {
					t.Fatalf("inverted period %s for reference %s billing day %d months back %d", p, ref, bd, mb)
				}
			}
		}
	}
}

func TestResolvePeriod_ConsecutiveCyclesAreContiguous(t *testing.T) {
	from := date(2023, time.January, 1)
	to := date(2024, time.December, 31)

	for ref := from; !ref.After(to); ref = ref.AddDays(1) {
		for bd := MinBillingDay; bd <= 28; bd++ {
			current, err := ResolvePeriod(ref, lo.ToPtr(bd), 0)
			require.NoError(t, err)
			previous, err := ResolvePeriod(ref, lo.ToPtr(bd), 1)
			require.NoError(t, err)

			if !previous.End.AddDays(1).Equal(current.Start) {
				t.Fatalf("gap between %s and %s for reference %s billing day %d", previous, current, ref, bd)
			}
			if !current.Contains(ref) {
				t.Fatalf("current cycle %s does not contain reference %s for billing day %d", current, ref, bd)
			}
		}
	}
}

// Clipping a late billing day into a short month lets the cycle ending there
// and the cycle starting there share the month's last day.
func TestResolvePeriod_ClippedCyclesShareShortMonthEnd(t *testing.T) {
	ref := date(2024, time.March, 10)
	bd := lo.ToPtr(30)

	current, err := ResolvePeriod(ref, bd, 0)
	require.NoError(t, err)
	previous, err := ResolvePeriod(ref, bd, 1)
	require.NoError(t, err)

	assert.Equal(t, Period{Start: date(2024, time.January, 30), End: date(2024, time.February, 29)}, previous)
	assert.Equal(t, Period{Start: date(2024, time.February, 29), End: date(2024, time.March, 29)}, current)
	assert.True(t, previous.Contains(date(2024, time.February, 29)))
	assert.True(t, current.Contains(date(2024, time.February, 29)))
}

func TestResolvePeriod_Deterministic(t *testing.T) {
	ref := date(2024, time.May, 31)
	bd := lo.ToPtr(29)

	first, err := ResolvePeriod(ref, bd, 2)
	require.NoError(t, err)
	second, err := ResolvePeriod(ref, bd, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPeriod_WorkingDays(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   int
	}{
		{
			name:   "march 2024",
			period: Period{Start: date(2024, time.March, 1), End: date(2024, time.March, 31)},
			want:   21,
		},
		{
			name:   "leap february",
			period: Period{Start: date(2024, time.February, 1), End: date(2024, time.February, 29)},
			want:   21,
		},
		{
			name:   "single saturday",
			period: Period{Start: date(2024, time.March, 16), End: date(2024, time.March, 16)},
			want:   0,
		},
		{
			name:   "single monday",
			period: Period{Start: date(2024, time.March, 18), End: date(2024, time.March, 18)},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.WorkingDays())
		})
	}

	assert.Equal(t, 31, Period{Start: date(2024, time.March, 1), End: date(2024, time.March, 31)}.Days())
}

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

func TestDate_AddMonthsNoOverflow(t *testing.T) {
	tests := []struct {
		name   string
		date   Date
		months int
		want   Date
	}{
		{
			name:   "simple month forward",
			date:   NewDate(2024, time.March, 10),
			months: 1,
			want:   NewDate(2024, time.April, 10),
		},
		{
			name:   "clamps to leap february",
			date:   NewDate(2024, time.January, 31),
			months: 1,
			want:   NewDate(2024, time.February, 29),
		},
		{
			name:   "clamps to non leap february",
			date:   NewDate(2023, time.March, 31),
			months: -1,
			want:   NewDate(2023, time.February, 28),
		},
		{
			name:   "crosses year backwards",
			date:   NewDate(2024, time.January, 15),
			months: -2,
			want:   NewDate(2023, time.November, 15),
		},
		{
			name:   "crosses year forwards",
			date:   NewDate(2024, time.December, 31),
			months: 2,
			want:   NewDate(2025, time.February, 28),
		},
		{
			name:   "thirty first into thirty day month",
			date:   NewDate(2024, time.May, 31),
			months: -1,
			want:   NewDate(2024, time.April, 30),
		},
		{
			name:   "zero months",
			date:   NewDate(2024, time.June, 5),
			months: 0,
			want:   NewDate(2024, time.June, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.date.AddMonthsNoOverflow(tt.months)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tt.date.SubMonthsNoOverflow(-tt.months))
		})
	}
}

func TestDate_MonthBoundaries(t *testing.T) {
	d := NewDate(2024, time.February, 17)
	assert.Equal(t, NewDate(2024, time.February, 1), d.StartOfMonth())
	assert.Equal(t, NewDate(2024, time.February, 29), d.EndOfMonth())
	assert.Equal(t, NewDate(2023, time.February, 28), NewDate(2023, time.February, 3).EndOfMonth())
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
}

func TestDate_AddDays(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.March, 1), NewDate(2024, time.February, 10).AddDays(20))
	assert.Equal(t, NewDate(2023, time.December, 31), NewDate(2024, time.January, 1).AddDays(-1))
	assert.Equal(t, 20, NewDate(2024, time.February, 10).DaysUntil(NewDate(2024, time.March, 1)))
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2024, time.March, 15)
	b := NewDate(2024, time.April, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2024, time.March, 15)))
	assert.True(t, a.Between(a, b))
	assert.True(t, b.Between(a, b))
	assert.False(t, NewDate(2024, time.April, 2).Between(a, b))
}

func TestDate_IsWeekday(t *testing.T) {
	assert.True(t, NewDate(2024, time.March, 15).IsWeekday())  // Friday
	assert.False(t, NewDate(2024, time.March, 16).IsWeekday()) // Saturday
	assert.False(t, NewDate(2024, time.March, 17).IsWeekday()) // Sunday
}

func TestDateOf_UsesLocation(t *testing.T) {
	// 2024-01-31 20:00 UTC is already February 1st in IST
	instant := time.Date(2024, time.January, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2024, time.January, 31), DateOf(instant))
	assert.Equal(t, NewDate(2024, time.February, 1), DateOf(instant.In(ist)))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		On  Date  `json:"on"`
		Opt *Date `json:"opt"`
	}

	b, err := json.Marshal(payload{On: NewDate(2024, time.February, 29)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2024-02-29","opt":null}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"on":"2023-12-01","opt":"2024-01-02"}`), &p))
	assert.Equal(t, NewDate(2023, time.December, 1), p.On)
	require.NotNil(t, p.Opt)
	assert.Equal(t, NewDate(2024, time.January, 2), *p.Opt)

	assert.Error(t, json.Unmarshal([]byte(`{"on":"2023-13-01"}`), &p))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2024, time.May, 4), d)

	require.NoError(t, d.Scan("2024-06-07"))
	assert.Equal(t, NewDate(2024, time.June, 7), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2024, time.June, 7).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 7, 0, 0, 0, 0, time.UTC), v)
}

func TestFixedClock(t *testing.T) {
	clock := NewFixedClock(time.Date(2024, time.March, 10, 23, 0, 0, 0, ist))
	assert.Equal(t, NewDate(2024, time.March, 10), clock.Today())
}

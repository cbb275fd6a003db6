package types

import "time"

func ParseTime(t string) (time.Time, error) {
	return time.Parse(time.RFC3339, t)
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Clock supplies "now" to services so that date dependent logic can be tested
// with a fixed reference date.
type Clock interface {
	Now() time.Time
	Today() Date
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a wall clock reporting dates in loc (UTC when nil)
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time { return time.Now().In(c.loc) }
func (c systemClock) Today() Date    { return DateOf(c.Now()) }

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

func NewFixedClock(at time.Time) *FixedClock {
	return &FixedClock{At: at}
}

func (c *FixedClock) Now() time.Time { return c.At }
func (c *FixedClock) Today() Date    { return DateOf(c.At) }

// LoadLocation resolves an IANA zone name, falling back to UTC for an empty name
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

package dateutil

import (
	"fmt"
	"math"
	"time"
)

// Layout is the canonical text form of a Key.
const Layout = "2006-01-02"

// Key identifies one calendar day in the viewer's local timezone.
// All day bucketing and comparison in the engine routes through this type;
// slicing a UTC timestamp string shifts the day for users west of UTC.
type Key struct {
	Year  int
	Month time.Month
	Day   int
}

// KeyOf buckets a timestamp into the calendar day of its own location.
func KeyOf(t time.Time) Key {
	y, m, d := t.Date()
	return Key{Year: y, Month: m, Day: d}
}

// Today returns the current local calendar day.
func Today() Key {
	return KeyOf(time.Now())
}

// Parse reads a Key from its YYYY-MM-DD form.
func Parse(s string) (Key, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return Key{}, fmt.Errorf("parse day key %q: %w", s, err)
	}
	return KeyOf(t), nil
}

func (k Key) String() string {
	return k.Time().Format(Layout)
}

// Time returns local midnight of the day. time.Date normalizes
// out-of-range components, which AddDays relies on.
func (k Key) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local)
}

func (k Key) IsZero() bool {
	return k == Key{}
}

// AddDays returns the day n days after k (n may be negative).
func (k Key) AddDays(n int) Key {
	return KeyOf(time.Date(k.Year, k.Month, k.Day+n, 0, 0, 0, 0, time.Local))
}

// Compare returns -1 if k is before o, 0 if equal, +1 if after.
func (k Key) Compare(o Key) int {
	switch {
	case k == o:
		return 0
	case k.Year != o.Year:
		return sign(k.Year - o.Year)
	case k.Month != o.Month:
		return sign(int(k.Month) - int(o.Month))
	default:
		return sign(k.Day - o.Day)
	}
}

func (k Key) Before(o Key) bool { return k.Compare(o) < 0 }
func (k Key) After(o Key) bool  { return k.Compare(o) > 0 }

// DaysBetween returns the number of calendar days from a to b
// (positive when b is after a). DST transitions are absorbed by
// rounding the wall-clock difference.
func DaysBetween(a, b Key) int {
	d := b.Time().Sub(a.Time())
	return int(math.Round(d.Hours() / 24))
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Package dates extracts date-like substrings from report text, normalizes
// them to canonical calendar dates and reconciles them with the expected
// report date.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// ErrUnparsable marks a context date string that no supported layout accepts.
var ErrUnparsable = errors.New("unparsable date")

// Date is a canonical calendar date. Equality is defined on the triple; the
// weekday is always derived.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime truncates t to its calendar date in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// New validates the triple and returns the date. Triples that do not name a
// real calendar day (month 13, February 30) or fall outside 1900..2199 are
// rejected.
func New(year, month, day int) (Date, bool) {
	if year < 1900 || year > 2199 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, true
}

// Parse reads an expected-date argument in YYYY-MM-DD, YYYYMMDD, YYYY/MM/DD or
// MM/DD/YYYY form.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty", ErrUnparsable)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q: %v", ErrUnparsable, s, err)
	}
	d := FromTime(t)
	if _, ok := New(d.Year, int(d.Month), d.Day); !ok {
		return Date{}, fmt.Errorf("%w: %q out of range", ErrUnparsable, s)
	}
	return d, nil
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compact formats d as YYYYMMDD.
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// Weekday returns the day of week with Monday=0 … Sunday=6.
func (d Date) Weekday() int {
	return (int(d.Time().Weekday()) + 6) % 7
}

// WeekdayName returns the Korean weekday name of d.
func (d Date) WeekdayName() string {
	return taxonomy.KoreanWeekdays[d.Weekday()]
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Time().After(other.Time()) }

// Variations lists the surface forms under which d may appear in a report.
func (d Date) Variations() []string {
	return []string{
		d.String(),
		d.Compact(),
		fmt.Sprintf("%02d월 %02d일", int(d.Month), d.Day),
		fmt.Sprintf("%d월 %d일", int(d.Month), d.Day),
	}
}

var englishWeekdays = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WeekdayIndex resolves a weekday label (Korean full name or stem, or an
// English name) to Monday=0 … Sunday=6.
func WeekdayIndex(label string) (int, bool) {
	l := strings.TrimSpace(label)
	for i, name := range taxonomy.KoreanWeekdays {
		if l == name || l == strings.TrimSuffix(name, "요일") {
			return i, true
		}
	}
	lower := strings.ToLower(l)
	for i, name := range englishWeekdays {
		if lower == name || (len(lower) == 3 && strings.HasPrefix(name, lower)) {
			return i, true
		}
	}
	return 0, false
}

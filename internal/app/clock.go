package app

import (
	"fmt"
	"time"

	"github.com/hyperifyio/reportguard/internal/dates"
	"github.com/hyperifyio/reportguard/internal/lookup"
)

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }

// DateInfo describes a report date the way the publishing scripts consume it.
type DateInfo struct {
	Date         string   `json:"date"`
	Day          string   `json:"day"`
	Title        string   `json:"title"`
	WeekdayIndex int      `json:"weekday_index"`
	Variations   []string `json:"variations"`
}

// NewDateInfo builds the DateInfo for d.
func NewDateInfo(d dates.Date) DateInfo {
	return DateInfo{
		Date:         d.String(),
		Day:          d.WeekdayName(),
		Title:        ReportTitle(d),
		WeekdayIndex: d.Weekday(),
		Variations:   d.Variations(),
	}
}

// ReportTitle is the canonical page title for the report of d.
func ReportTitle(d dates.Date) string {
	return fmt.Sprintf("%s - %s (%s)", lookup.ReportTitle, d, d.WeekdayName())
}

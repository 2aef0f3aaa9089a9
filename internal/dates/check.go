package dates

import (
	"fmt"
	"sort"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// Failure codes reported by Check. Each is a distinct cause.
const (
	FailExpectedDayMismatch = "expected_day_mismatch"
	FailDateMismatch        = "date_mismatch"
	FailFutureDate          = "future_date_detected"
	FailWeekdayMismatch     = "weekday_mismatch"
	// FailDocumentWeekday marks a bare weekday name that is not the
	// expected date's weekday.
	FailDocumentWeekday     = "document_weekday_mismatch"
)

// Options carries the explicit clock and expectations for Check.
type Options struct {
	// Expected is the report date every subject must mention.
	Expected Date
	// ExpectedDay, when set, must name Expected's weekday.
	ExpectedDay string
	// Today bounds future-date detection; zero disables it.
	Today Date
}

// Subject is one document's extraction result under a display name.
type Subject struct {
	Name  string
	Found Found
}

// Result is the outcome of Check.
type Result struct {
	Consistent   bool
	Failures     []string
	Messages     []string
	Expected     string
	ExpectedDay  string
	WeekdayIndex int
	Variations   []string
	// Present maps subject name to whether it mentions the expected date.
	Present map[string]bool
	// Found maps subject name to its normalized dates.
	Found             map[string][]string
	FutureDates       []string
	WeekdayMismatches []string
	// WrongWeekdays maps subject name to the bare weekday names that
	// disagree with the expected date.
	WrongWeekdays     map[string][]string
	// Matches maps subject name to the raw date-like substrings recognized.
	Matches           map[string][]Match
}

// Failed reports whether code is among the failures.
func (r Result) Failed(code string) bool {
	for _, f := range r.Failures {
		if f == code {
			return true
		}
	}
	return false
}

// Check reconciles the subjects' dates with opts. All checks run; every
// failing one is reported.
func Check(opts Options, subjects ...Subject) Result {
	exp := opts.Expected
	res := Result{
		Expected:      exp.String(),
		ExpectedDay:   exp.WeekdayName(),
		WeekdayIndex:  exp.Weekday(),
		Variations:    exp.Variations(),
		Present:       map[string]bool{},
		Found:         map[string][]string{},
		WrongWeekdays: map[string][]string{},
		Matches:       map[string][]Match{},
	}
	fail := func(code, msg string) {
		if !res.Failed(code) {
			res.Failures = append(res.Failures, code)
		}
		res.Messages = append(res.Messages, msg)
	}

	if opts.ExpectedDay != "" {
		idx, ok := WeekdayIndex(opts.ExpectedDay)
		if !ok || idx != exp.Weekday() {
			fail(FailExpectedDayMismatch, fmt.Sprintf("%s is %s but %s was supplied", exp, exp.WeekdayName(), opts.ExpectedDay))
		}
	}

	future := map[Date]struct{}{}
	for _, s := range subjects {
		has := s.Found.Has(exp)
		res.Present[s.Name] = has
		res.Found[s.Name] = s.Found.Strings()
		if !has {
			fail(FailDateMismatch, fmt.Sprintf("%s does not mention %s", s.Name, exp))
		}
		if !opts.Today.IsZero() {
			for _, d := range s.Found.Dates {
				if d.After(opts.Today) {
					future[d] = struct{}{}
				}
			}
		}
		res.Matches[s.Name] = s.Found.Matches
		for _, wd := range s.Found.Weekdays {
			if wd != exp.Weekday() {
				name := taxonomy.KoreanWeekdays[wd]
				res.WrongWeekdays[s.Name] = append(res.WrongWeekdays[s.Name], name)
				fail(FailDocumentWeekday, fmt.Sprintf("%s mentions %s but %s is %s", s.Name, name, exp, exp.WeekdayName()))
			}
		}
		for _, p := range s.Found.Pairs {
			if p.Date.Weekday() != p.Weekday {
				res.WeekdayMismatches = append(res.WeekdayMismatches, p.Text)
				fail(FailWeekdayMismatch, fmt.Sprintf("%s: %q but %s is %s", s.Name, p.Text, p.Date, p.Date.WeekdayName()))
			}
		}
	}
	for d := range future {
		res.FutureDates = append(res.FutureDates, d.String())
	}
	sort.Strings(res.FutureDates)
	if len(res.FutureDates) > 0 {
		fail(FailFutureDate, fmt.Sprintf("future dates after %s: %v", opts.Today, res.FutureDates))
	}
	res.Consistent = len(res.Failures) == 0
	return res
}

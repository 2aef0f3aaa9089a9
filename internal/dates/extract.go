package dates

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// Match is one raw date-like substring and its normalized form.
type Match struct {
	Rule       string `json:"rule"`
	Text       string `json:"text"`
	Normalized string `json:"normalized"`
}

// Pair is a date written together with a weekday label, e.g.
// "2026-01-24 (토요일)".
type Pair struct {
	Date    Date
	Weekday int
	Text    string
}

// Found is everything the date rules recognized in one text.
type Found struct {
	// Dates holds the distinct normalized dates in ascending order.
	Dates []Date
	// Weekdays holds weekday names written on their own, outside a dated
	// pair, as Monday=0 … Sunday=6.
	Weekdays []int
	Pairs    []Pair
	Matches  []Match
}

// Has reports whether d was found.
func (f Found) Has(d Date) bool {
	for _, x := range f.Dates {
		if x == d {
			return true
		}
	}
	return false
}

// Strings returns the normalized dates as YYYY-MM-DD.
func (f Found) Strings() []string {
	out := make([]string, len(f.Dates))
	for i, d := range f.Dates {
		out[i] = d.String()
	}
	return out
}

// Extract applies every date rule independently to text. A single date may
// match several rules; the normalized set is deduplicated. Month-day phrases
// take year from the caller. Substrings that look like dates but do not name
// a real day are dropped.
func Extract(text string, tax *taxonomy.Taxonomy, year int) Found {
	var f Found
	seen := map[Date]struct{}{}
	seenDay := map[int]struct{}{}
	var (
		days      []weekdayHit
		pairSpans [][2]int
	)
	add := func(d Date) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		f.Dates = append(f.Dates, d)
	}
	for _, rule := range tax.Dates {
		for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			raw := text[loc[0]:loc[1]]
			group := func(i int) string { return text[loc[2*i]:loc[2*i+1]] }
			switch rule.Form {
			case taxonomy.FormISO, taxonomy.FormCompact, taxonomy.FormKoreanFull:
				d, ok := New(atoi(group(1)), atoi(group(2)), atoi(group(3)))
				if !ok {
					continue
				}
				add(d)
				f.Matches = append(f.Matches, Match{Rule: rule.ID, Text: raw, Normalized: d.String()})
			case taxonomy.FormMonthDay:
				// Already covered by the full form; its own year wins.
				if strings.HasSuffix(strings.TrimRight(text[:loc[0]], " \t"), "년") {
					continue
				}
				d, ok := New(year, atoi(group(1)), atoi(group(2)))
				if !ok {
					continue
				}
				add(d)
				f.Matches = append(f.Matches, Match{Rule: rule.ID, Text: raw, Normalized: d.String()})
			case taxonomy.FormWeekday:
				idx, ok := WeekdayIndex(group(1))
				if !ok {
					continue
				}
				days = append(days, weekdayHit{idx: idx, start: loc[0], end: loc[1], match: Match{Rule: rule.ID, Text: raw, Normalized: tax.Weekdays[idx]}})
			case taxonomy.FormDatedWeekday:
				d, err := Parse(group(1))
				if err != nil {
					continue
				}
				idx, ok := WeekdayIndex(group(2))
				if !ok {
					continue
				}
				f.Pairs = append(f.Pairs, Pair{Date: d, Weekday: idx, Text: raw})
				pairSpans = append(pairSpans, [2]int{loc[0], loc[1]})
			}
		}
	}
	// Weekday names inside a dated pair are reconciled with their own date.
	for _, h := range days {
		if within(h.start, h.end, pairSpans) {
			continue
		}
		if _, dup := seenDay[h.idx]; !dup {
			seenDay[h.idx] = struct{}{}
			f.Weekdays = append(f.Weekdays, h.idx)
		}
		f.Matches = append(f.Matches, h.match)
	}
	sort.Slice(f.Dates, func(i, j int) bool { return f.Dates[j].After(f.Dates[i]) })
	sort.Ints(f.Weekdays)
	return f
}

type weekdayHit struct {
	idx        int
	start, end int
	match      Match
}

func within(start, end int, spans [][2]int) bool {
	for _, sp := range spans {
		if start >= sp[0] && end <= sp[1] {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

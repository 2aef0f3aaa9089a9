// Package units checks the numeric presentation of the short message: GMV
// scale, mandatory labelled metrics and the fixed-size TOP 3 block.
package units

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// Top3Entry is one medal line of the TOP 3 block.
type Top3Entry struct {
	Medal string
	Text  string
	Valid bool
}

// Result is the outcome of Check. Errors flip Valid; warnings never do.
type Result struct {
	Valid              bool
	ScaleCorrect       bool
	MetricsPresent     bool
	Top3Correct        bool
	ThreadUnitsCorrect bool
	Errors             []string
	Warnings           []string
	MissingMetrics     []string
	Top3Entries        []Top3Entry
}

// Check runs every unit rule against text and collects all findings.
func Check(text string, tax *taxonomy.Taxonomy) Result {
	var r Result

	disallowed := tax.DisallowedScale.FindAllString(text, -1)
	r.ScaleCorrect = len(disallowed) == 0
	r.ThreadUnitsCorrect = r.ScaleCorrect
	if !r.ScaleCorrect {
		r.Errors = append(r.Errors, fmt.Sprintf("disallowed 억 scale: %s", strings.Join(disallowed, ", ")))
	}
	if raw := tax.RawAmount.FindAllString(text, -1); len(raw) > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("raw GMV amounts need 백만 conversion: %s", strings.Join(raw, ", ")))
	}
	if mentions := tax.AmountMention.FindAllString(text, -1); len(mentions) > 0 && !tax.CanonicalScale.MatchString(text) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("GMV values without 백만 scale: %s", strings.Join(mentions, ", ")))
	}

	for _, m := range tax.Metrics {
		if !m.Pattern.MatchString(text) {
			r.MissingMetrics = append(r.MissingMetrics, m.Name)
		}
	}
	r.MetricsPresent = len(r.MissingMetrics) == 0
	if !r.MetricsPresent {
		r.Errors = append(r.Errors, "missing required metrics: "+strings.Join(r.MissingMetrics, ", "))
	}

	r.Top3Entries, r.Top3Correct, r.Errors = checkTop3(text, tax.Top3, r.Errors)

	r.Valid = r.ScaleCorrect && r.MetricsPresent && r.Top3Correct && r.ThreadUnitsCorrect
	return r
}

func checkTop3(text string, rule taxonomy.Top3Rule, errs []string) ([]Top3Entry, bool, []string) {
	loc := rule.Header.FindStringIndex(text)
	if loc == nil {
		return nil, false, append(errs, "missing TOP 3 block")
	}
	block := text[loc[1]:]
	end := len(block)
	for _, t := range rule.Terminators {
		if i := strings.Index(block, t); i >= 0 && i < end {
			end = i
		}
	}
	block = block[:end]

	medals := rule.Medal.FindAllStringIndex(block, -1)
	entries := make([]Top3Entry, 0, len(medals))
	ok := true
	for i, m := range medals {
		stop := len(block)
		if i+1 < len(medals) {
			stop = medals[i+1][0]
		}
		e := Top3Entry{Medal: block[m[0]:m[1]], Text: strings.TrimSpace(block[m[0]:stop])}
		e.Valid = rule.Entry.MatchString(e.Text)
		if !e.Valid {
			ok = false
			errs = append(errs, fmt.Sprintf("%s entry does not match \"GMV ±X%% | Y백만\": %q", e.Medal, firstLine(e.Text)))
		}
		entries = append(entries, e)
	}
	if len(medals) != rule.Size {
		ok = false
		errs = append(errs, fmt.Sprintf("expected %d entries in TOP 3, found %d", rule.Size, len(medals)))
	}
	return entries, ok, errs
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// ToDisplay converts a won amount to the 백만 display value: one decimal at or
// above one million, two below.
func ToDisplay(amount float64) string {
	m := amount / 1_000_000
	if m >= 1 {
		return strconv.FormatFloat(m, 'f', 1, 64)
	}
	return strconv.FormatFloat(m, 'f', 2, 64)
}

// ParseAmount parses a written amount such as "49,688,263" or "49.7".
func ParseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}

var multipliers = map[string]float64{
	"원":   1,
	"만원":  1e4,
	"백만":  1e6,
	"백만원": 1e6,
	"억":   1e8,
}

// ToWon scales an amount written with unit to won.
func ToWon(amount float64, unit string) (float64, bool) {
	m, ok := multipliers[unit]
	if !ok {
		return 0, false
	}
	return amount * m, true
}

// Examples are reference conversions printed by the convert command.
var Examples = []float64{49_688_263, 219_792_681, 1_527_853, 3_170_385, 3_375_706}

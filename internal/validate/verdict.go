package validate

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/reportguard/internal/brevity"
	"github.com/hyperifyio/reportguard/internal/dates"
	"github.com/hyperifyio/reportguard/internal/entities"
	"github.com/hyperifyio/reportguard/internal/units"
)

// Exit statuses for validation outcomes.
const (
	StatusOK              = 0
	StatusMissingCritical = 13
	StatusRankedMismatch  = 14
	StatusDateMismatch    = 15
	StatusMissingEntities = 16
	StatusFormat          = 17
)

// CriterionResult is the outcome of one criterion.
type CriterionResult struct {
	Criterion Criterion
	Passed    bool
	// Missing names the items that caused the failure.
	Missing []string
	// Extra names items present only in the rendering.
	Extra   []string
	Details string
}

// Verdict is the structured outcome of Validate. Pass is the AND of every
// evaluated criterion.
type Verdict struct {
	Pass        bool
	Expected    dates.Date
	Results     []CriterionResult
	Diagnostics []string
	Warnings    []string

	Completeness *Completeness
	Dates        *dates.Result
	Ranked       *entities.RankedCoverage
	Brands       *entities.BrandCoverage
	Units        *units.Result
	Conversions  *units.ConversionResult
	Brevity      *brevity.Result
}

func (v *Verdict) add(r CriterionResult) { v.Results = append(v.Results, r) }

// Result returns the result for c, if it was evaluated.
func (v Verdict) Result(c Criterion) (CriterionResult, bool) {
	for _, r := range v.Results {
		if r.Criterion == c {
			return r, true
		}
	}
	return CriterionResult{}, false
}

// Failed lists the criteria that did not pass, in evaluation order.
func (v Verdict) Failed() []Criterion {
	var out []Criterion
	for _, r := range v.Results {
		if !r.Passed {
			out = append(out, r.Criterion)
		}
	}
	return out
}

// Status maps the verdict to an exit status. With several failures the
// priority is completeness, dates, ranked list, entities, then format.
func (v Verdict) Status() int {
	failed := map[Criterion]bool{}
	for _, c := range v.Failed() {
		failed[c] = true
	}
	switch {
	case len(failed) == 0:
		return StatusOK
	case failed[CriterionCompleteness]:
		return StatusMissingCritical
	case failed[CriterionDates]:
		return StatusDateMismatch
	case failed[CriterionRanked]:
		return StatusRankedMismatch
	case failed[CriterionEntities]:
		return StatusMissingEntities
	default:
		return StatusFormat
	}
}

// Flat returns the verdict as a flat key/value map for machine consumption.
// Keys appear only for evaluated criteria.
func (v Verdict) Flat() map[string]any {
	out := map[string]any{
		"valid":           v.Pass,
		"failed_criteria": criteriaNames(v.Failed()),
		"warnings":        nonNil(v.Warnings),
	}
	if !v.Expected.IsZero() {
		out["expected_date"] = v.Expected.String()
	}
	if c := v.Completeness; c != nil {
		out["is_complete"] = c.IsComplete
		out["completeness_score"] = c.Score
		out["missing_sections"] = ids(c.Missing)
		out["missing_critical"] = ids(c.MissingCritical)
		out["extra_sections"] = ids(c.Extra)
		out["mcp_section_count"] = c.SourceCount
		out["notion_section_count"] = c.RenderedCount
	}
	if d := v.Dates; d != nil {
		out["date_consistent"] = d.Consistent
		out["date_failures"] = nonNil(d.Failures)
		out["expected_day"] = d.ExpectedDay
		out["expected_variations"] = d.Variations
		out["mcp_dates"] = nonNil(d.Found["source"])
		out["mcp_has_expected"] = d.Present["source"]
		if _, ok := d.Present["long-form"]; ok {
			out["notion_dates"] = nonNil(d.Found["long-form"])
			out["notion_has_expected"] = d.Present["long-form"]
		}
		if _, ok := d.Present["message"]; ok {
			out["slack_dates"] = nonNil(d.Found["message"])
			out["slack_has_expected"] = d.Present["message"]
		}
		out["future_dates"] = nonNil(d.FutureDates)
		out["wrong_weekdays"] = d.WrongWeekdays
		out["date_matches"] = d.Matches
	}
	if r := v.Ranked; r != nil {
		out["top10_complete"] = r.Complete
		out["mcp_product_count"] = r.SourceCount
		out["notion_product_count"] = r.RenderedCount
		out["minimum_threshold_met"] = r.MinimumMet
	}
	if b := v.Brands; b != nil {
		out["brands_complete"] = b.Complete
		out["mcp_brands_count"] = b.SourceCount
		out["notion_brands_count"] = b.RenderedCount
		out["required_brands_found"] = nonNil(b.RequiredFound)
		out["missing_required_brands"] = nonNil(b.MissingRequired)
		out["optional_brands_found"] = nonNil(b.OptionalFound)
	}
	if u := v.Units; u != nil {
		out["units_valid"] = u.Valid
		out["gmv_units_correct"] = u.ScaleCorrect
		out["required_metrics_present"] = u.MetricsPresent
		out["top3_format_correct"] = u.Top3Correct
		out["thread_units_correct"] = u.ThreadUnitsCorrect
		out["unit_errors"] = nonNil(u.Errors)
	}
	if c := v.Conversions; c != nil {
		out["conversions_valid"] = c.Valid
		out["conversion_errors"] = nonNil(c.Errors)
	}
	if b := v.Brevity; b != nil {
		if _, ok := v.Result(CriterionBrevity); ok {
			out["word_rule_ok"] = b.WithinLimit
			out["word_violations"] = len(b.Violations)
		}
		if _, ok := v.Result(CriterionMessageElements); ok {
			out["elements_present"] = b.ElementsPresent
			out["missing_elements"] = nonNil(b.MissingElements)
		}
	}
	return out
}

// Report renders a human-readable multi-line summary.
func (v Verdict) Report() string {
	var b strings.Builder
	b.WriteString("📊 PB daily report validation\n")
	b.WriteString(strings.Repeat("━", 39) + "\n")
	if v.Pass {
		b.WriteString("✅ PASS: all checks passed\n")
	} else {
		b.WriteString("❌ FAIL: some checks failed\n")
	}
	for _, r := range v.Results {
		fmt.Fprintf(&b, "• %s: %s", label(r.Criterion), glyph(r.Passed))
		if r.Details != "" {
			fmt.Fprintf(&b, " (%s)", r.Details)
		}
		b.WriteString("\n")
		if !r.Passed {
			for _, m := range r.Missing {
				fmt.Fprintf(&b, "  - %s\n", m)
			}
		}
		if r.Criterion == CriterionDates && !r.Passed && v.Dates != nil {
			fmt.Fprintf(&b, "  - expected: %s (%s)\n", v.Dates.Expected, v.Dates.ExpectedDay)
			for _, name := range []string{"source", "long-form", "message"} {
				if found, ok := v.Dates.Found[name]; ok {
					fmt.Fprintf(&b, "  - %s dates: %v\n", name, found)
				}
			}
		}
	}
	if len(v.Warnings) > 0 {
		b.WriteString("\n⚠️  warnings:\n")
		for _, w := range v.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return b.String()
}

func label(c Criterion) string {
	switch c {
	case CriterionCompleteness:
		return "Completeness"
	case CriterionDates:
		return "Date consistency"
	case CriterionRanked:
		return "Top 10 products"
	case CriterionEntities:
		return "Brand coverage"
	case CriterionUnits:
		return "Units"
	case CriterionBrevity:
		return "Word rule"
	case CriterionMessageElements:
		return "Mandatory elements"
	}
	return string(c)
}

func glyph(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func criteriaNames(cs []Criterion) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// nonNil keeps JSON output as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Package taxonomy holds the recognition rules used by every extractor as
// plain data. Extractors are generic over a *Taxonomy; adding or editing a
// rule never requires touching matching logic.
package taxonomy

import (
	"fmt"
	"regexp"
)

// Kind tags a document with the form it was produced in. Rules may differ in
// strictness between the source and rendered forms.
type Kind string

const (
	KindSource   Kind = "source"
	KindLongForm Kind = "rendered-long-form"
	KindMessage  Kind = "rendered-short-message"
)

// Rendered reports whether k is one of the derived, human-facing forms.
func (k Kind) Rendered() bool { return k == KindLongForm || k == KindMessage }

// SectionID identifies a report section. Identifiers are shared between the
// source and rendered rules.
type SectionID string

const (
	SectionBrandSnapshots      SectionID = "brand_snapshots"
	SectionTopPerformers       SectionID = "top_performers"
	SectionUrgentPriorities    SectionID = "urgent_priorities"
	SectionActionItems         SectionID = "action_items"
	SectionTop10Products       SectionID = "top_10_products"
	SectionMissedOpportunities SectionID = "missed_opportunities"
	SectionRequiredActions     SectionID = "required_actions"
	SectionDetailedAnalysis    SectionID = "detailed_analysis"
	// SectionSufficientBrands is derived from brand coverage rather than a
	// header rule.
	SectionSufficientBrands SectionID = "sufficient_brands"
)

// SectionRule maps one SectionID to exactly one matcher per document kind.
type SectionRule struct {
	ID       SectionID
	Source   *regexp.Regexp
	Rendered *regexp.Regexp
}

// For returns the matcher used for documents of kind k.
func (r SectionRule) For(k Kind) *regexp.Regexp {
	if k.Rendered() {
		return r.Rendered
	}
	return r.Source
}

// NamedRule is an ordered, human-named matcher (metrics, exemptions,
// mandatory message elements).
type NamedRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Brand is an allow-listed entity. Required brands must be reproduced in the
// rendering; optional ones are reported but never fail a run.
type Brand struct {
	Name     string
	Required bool

	source   *regexp.Regexp
	longForm *regexp.Regexp
	message  *regexp.Regexp
	presence *regexp.Regexp
}

// NewBrand compiles the per-kind name matchers for name. The long-form
// rendering wraps brand names in emphasis markers the source lacks; the short
// message tolerates emphasis or brackets.
func NewBrand(name string, required bool) Brand {
	q := regexp.QuoteMeta(name)
	return Brand{
		Name:     name,
		Required: required,
		source:   regexp.MustCompile(q),
		longForm: regexp.MustCompile(`\*\*` + q + `\*\*`),
		message:  regexp.MustCompile(`\*{0,2}\[?` + q + `\]?\*{0,2}`),
		presence: regexp.MustCompile(q + `.*GMV`),
	}
}

// NameMatcher returns the matcher for the brand's name in documents of kind k.
func (b Brand) NameMatcher(k Kind) *regexp.Regexp {
	switch k {
	case KindLongForm:
		return b.longForm
	case KindMessage:
		return b.message
	default:
		return b.source
	}
}

// Presence returns the looser matcher used when counting brands for the
// sufficient-brands pseudo-section.
func (b Brand) Presence(k Kind) *regexp.Regexp {
	if k == KindSource {
		return b.presence
	}
	return b.NameMatcher(k)
}

// DateForm names the surface form a date rule recognizes.
type DateForm int

const (
	FormISO DateForm = iota
	FormCompact
	FormKoreanFull
	FormMonthDay
	FormWeekday
	FormDatedWeekday
)

func (f DateForm) String() string {
	switch f {
	case FormISO:
		return "iso"
	case FormCompact:
		return "compact"
	case FormKoreanFull:
		return "korean-full"
	case FormMonthDay:
		return "month-day"
	case FormWeekday:
		return "weekday"
	case FormDatedWeekday:
		return "dated-weekday"
	}
	return fmt.Sprintf("form(%d)", int(f))
}

// DateRule recognizes one date surface form. Capture groups depend on Form:
// ISO/compact/korean-full capture year, month, day; month-day captures month,
// day; weekday captures the weekday stem; dated-weekday captures the ISO date
// and the weekday stem.
type DateRule struct {
	ID      string
	Form    DateForm
	Pattern *regexp.Regexp
}

// Top3Rule describes the fixed-cardinality ranked block of the short message.
type Top3Rule struct {
	Header      *regexp.Regexp
	Terminators []string
	Medal       *regexp.Regexp
	Entry       *regexp.Regexp
	Size        int
}

// Taxonomy is the closed registry of recognition rules.
type Taxonomy struct {
	Sections []SectionRule
	Critical []SectionID
	Brands   []Brand

	// Quantity captures (amount, unit) after a GMV label.
	Quantity *regexp.Regexp
	// RankedItem captures (rank, label, amount) of a ranked product line.
	RankedItem *regexp.Regexp

	Dates []DateRule
	// Weekdays holds the weekday names indexed Monday=0 … Sunday=6.
	Weekdays [7]string

	DisallowedScale *regexp.Regexp
	CanonicalScale  *regexp.Regexp
	RawAmount       *regexp.Regexp
	AmountMention   *regexp.Regexp
	Metrics         []NamedRule
	Top3            Top3Rule

	Exemptions []NamedRule
	Elements   []NamedRule
}

// WithBrands returns a shallow copy of t using brands as the allow-list.
func (t *Taxonomy) WithBrands(brands []Brand) *Taxonomy {
	cp := *t
	cp.Brands = append([]Brand(nil), brands...)
	return &cp
}

// BrandsFromNames builds a brand list from required and optional names.
// A name listed in both is treated as required.
func BrandsFromNames(required, optional []string) []Brand {
	seen := map[string]struct{}{}
	out := make([]Brand, 0, len(required)+len(optional))
	for _, n := range required {
		if _, ok := seen[n]; ok || n == "" {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, NewBrand(n, true))
	}
	for _, n := range optional {
		if _, ok := seen[n]; ok || n == "" {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, NewBrand(n, false))
	}
	return out
}

// IsCritical reports whether id is in the critical subset.
func (t *Taxonomy) IsCritical(id SectionID) bool {
	for _, c := range t.Critical {
		if c == id {
			return true
		}
	}
	return false
}

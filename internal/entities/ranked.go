package entities

import (
	"strconv"
	"strings"

	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// DefaultMinRanked is the minimum number of ranked items a rendering must
// carry.
const DefaultMinRanked = 8

// RankedItem is one numbered product line with its GMV amount.
type RankedItem struct {
	Rank   int
	Label  string
	Amount string
}

// FindRanked returns every ranked product line in doc, in text order.
func FindRanked(doc document.Document, tax *taxonomy.Taxonomy) []RankedItem {
	var out []RankedItem
	for _, m := range tax.RankedItem.FindAllStringSubmatch(doc.Text(), -1) {
		rank, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, RankedItem{Rank: rank, Label: strings.TrimSpace(m[2]), Amount: m[3]})
	}
	return out
}

// RankedCoverage compares ranked lists of the source and the rendering.
type RankedCoverage struct {
	// Complete requires equal counts and at least the minimum.
	Complete      bool
	SourceCount   int
	RenderedCount int
	MinimumMet    bool
	Minimum       int
	// MissingLabels lists source labels the rendering does not carry.
	MissingLabels []string
}

// CompareRanked checks the rendering reproduces the source's ranked list.
// minimum <= 0 selects DefaultMinRanked.
func CompareRanked(source, rendered []RankedItem, minimum int) RankedCoverage {
	if minimum <= 0 {
		minimum = DefaultMinRanked
	}
	cov := RankedCoverage{
		SourceCount:   len(source),
		RenderedCount: len(rendered),
		Minimum:       minimum,
	}
	cov.Complete = cov.SourceCount == cov.RenderedCount && cov.SourceCount >= minimum
	cov.MinimumMet = cov.RenderedCount >= minimum

	have := make(map[string]struct{}, len(rendered))
	for _, it := range rendered {
		have[it.Label] = struct{}{}
	}
	for _, it := range source {
		if _, ok := have[it.Label]; !ok {
			cov.MissingLabels = append(cov.MissingLabels, it.Label)
		}
	}
	return cov
}

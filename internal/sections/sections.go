// Package sections recognizes which report sections a document carries.
package sections

import (
	"sort"

	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// DefaultMinBrands is the number of distinct brands a document must mention
// to carry the sufficient_brands pseudo-section.
const DefaultMinBrands = 7

// Set is a presence set of section identifiers.
type Set map[taxonomy.SectionID]struct{}

// Has reports whether id is in s.
func (s Set) Has(id taxonomy.SectionID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []taxonomy.SectionID {
	out := make([]taxonomy.SectionID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Minus returns the members of s absent from other.
func (s Set) Minus(other Set) Set {
	out := Set{}
	for id := range s {
		if !other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Result is the extraction outcome for one document.
type Result struct {
	Sections Set
	// BrandCount is the number of distinct brands recognized for the
	// sufficient_brands pseudo-section.
	BrandCount int
}

// Extract applies the section rules for doc.Kind. It never fails: an absent
// section is simply not in the set. minBrands <= 0 selects DefaultMinBrands.
func Extract(doc document.Document, tax *taxonomy.Taxonomy, minBrands int) Result {
	if minBrands <= 0 {
		minBrands = DefaultMinBrands
	}
	text := doc.Text()
	set := Set{}
	for _, rule := range tax.Sections {
		if re := rule.For(doc.Kind); re != nil && re.MatchString(text) {
			set[rule.ID] = struct{}{}
		}
	}
	brands := 0
	for _, b := range tax.Brands {
		if b.Presence(doc.Kind).MatchString(text) {
			brands++
		}
	}
	if brands >= minBrands {
		set[taxonomy.SectionSufficientBrands] = struct{}{}
	}
	return Result{Sections: set, BrandCount: brands}
}

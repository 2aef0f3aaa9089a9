// Package entities finds allow-listed brands paired with a nearby GMV amount,
// and ranked product lines, and compares their coverage between the source
// and the rendering.
package entities

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// DefaultWindow is the adjacency window in runes between a brand name and its
// quantity.
const DefaultWindow = 200

// Record is a brand recognized together with a quantity.
type Record struct {
	Name     string
	Required bool
	// Amount is the raw amount text as written ("49,688,263", "49.7").
	Amount string
	// Unit is the suffix the amount was written with (원, 만원, 억, 백만, 백만원).
	Unit string
	Kind taxonomy.Kind
}

// FindBrands returns one record per brand whose name is followed, within
// window runes on the same line, by a quantity. window <= 0 selects
// DefaultWindow.
func FindBrands(doc document.Document, tax *taxonomy.Taxonomy, window int) []Record {
	if window <= 0 {
		window = DefaultWindow
	}
	text := doc.Text()
	var out []Record
	for _, b := range tax.Brands {
		name := b.NameMatcher(doc.Kind)
		for _, loc := range name.FindAllStringIndex(text, -1) {
			span := adjacent(text[loc[1]:], window)
			m := tax.Quantity.FindStringSubmatch(span)
			if m == nil {
				continue
			}
			out = append(out, Record{Name: b.Name, Required: b.Required, Amount: m[1], Unit: m[2], Kind: doc.Kind})
			break
		}
	}
	return out
}

// adjacent returns at most n runes of s, cut at the first newline.
func adjacent(s string, n int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// BrandCoverage compares brand records of the source and the rendering.
type BrandCoverage struct {
	// Complete is true when every required brand is present in the rendering.
	Complete      bool
	SourceCount   int
	RenderedCount int
	RequiredFound []string
	// MissingRequired lists required brands absent from the rendering, in
	// allow-list order.
	MissingRequired []string
	OptionalFound   []string
	// MissingOptional is informational only.
	MissingOptional []string
	// NotInSource lists brands the rendering shows but the source lacks.
	NotInSource []string
}

// CompareBrands checks coverage of brands in rendered. Missing required brands
// fail; missing optional brands never do.
func CompareBrands(source, rendered []Record, brands []taxonomy.Brand) BrandCoverage {
	src := names(source)
	ren := names(rendered)
	cov := BrandCoverage{SourceCount: len(src), RenderedCount: len(ren)}
	for _, b := range brands {
		_, inRendered := ren[b.Name]
		_, inSource := src[b.Name]
		switch {
		case b.Required && inRendered:
			cov.RequiredFound = append(cov.RequiredFound, b.Name)
		case b.Required:
			cov.MissingRequired = append(cov.MissingRequired, b.Name)
		case inRendered:
			cov.OptionalFound = append(cov.OptionalFound, b.Name)
		default:
			cov.MissingOptional = append(cov.MissingOptional, b.Name)
		}
		if inRendered && !inSource && len(source) > 0 {
			cov.NotInSource = append(cov.NotInSource, b.Name)
		}
	}
	cov.Complete = len(cov.MissingRequired) == 0
	return cov
}

func names(recs []Record) map[string]Record {
	out := make(map[string]Record, len(recs))
	for _, r := range recs {
		if _, ok := out[r.Name]; !ok {
			out[r.Name] = r
		}
	}
	return out
}

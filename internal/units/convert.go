package units

import (
	"fmt"

	"github.com/hyperifyio/reportguard/internal/entities"
)

// Conversion is one brand amount cross-checked between source and rendering.
type Conversion struct {
	Name      string
	Source    string
	Expected  string
	Displayed string
	OK        bool
}

// ConversionResult is the outcome of CheckConversions.
type ConversionResult struct {
	Valid       bool
	Conversions []Conversion
	Errors      []string
}

// CheckConversions verifies that every brand shown in 백만 in the rendering
// carries the value ToDisplay derives from its source amount. Brands missing
// on either side, or written in another unit, are skipped.
func CheckConversions(source, rendered []entities.Record) ConversionResult {
	res := ConversionResult{Valid: true}
	src := make(map[string]entities.Record, len(source))
	for _, r := range source {
		if _, ok := src[r.Name]; !ok {
			src[r.Name] = r
		}
	}
	for _, r := range rendered {
		if r.Unit != "백만" && r.Unit != "백만원" {
			continue
		}
		s, ok := src[r.Name]
		if !ok {
			continue
		}
		raw, err := ParseAmount(s.Amount)
		if err != nil {
			continue
		}
		won, ok := ToWon(raw, s.Unit)
		if !ok {
			continue
		}
		shown, err := ParseAmount(r.Amount)
		if err != nil {
			continue
		}
		want := ToDisplay(won)
		c := Conversion{
			Name:      r.Name,
			Source:    s.Amount + s.Unit,
			Expected:  want,
			Displayed: r.Amount,
		}
		if w, err := ParseAmount(want); err == nil && w == shown {
			c.OK = true
		} else {
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s should display as %s백만, got %s백만", r.Name, c.Source, want, r.Amount))
		}
		res.Conversions = append(res.Conversions, c)
	}
	return res
}

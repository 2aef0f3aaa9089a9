package validate

import (
	"math"

	"github.com/hyperifyio/reportguard/internal/sections"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// Completeness is the section comparison between source and rendering.
type Completeness struct {
	// IsComplete is true when no critical section present in the source is
	// absent from the rendering. The score never affects it.
	IsComplete bool
	// Score is rendered/source section count × 100, one decimal.
	Score           float64
	Missing         []taxonomy.SectionID
	MissingCritical []taxonomy.SectionID
	Extra           []taxonomy.SectionID
	SourceCount     int
	RenderedCount   int
}

// CompareSections compares the section sets. Only sections the source carries
// can be missing.
func CompareSections(src, rendered sections.Set, critical []taxonomy.SectionID) Completeness {
	c := Completeness{
		SourceCount:   len(src),
		RenderedCount: len(rendered),
		Missing:       src.Minus(rendered).Sorted(),
		Extra:         rendered.Minus(src).Sorted(),
	}
	for _, id := range c.Missing {
		for _, cr := range critical {
			if id == cr {
				c.MissingCritical = append(c.MissingCritical, id)
				break
			}
		}
	}
	c.IsComplete = len(c.MissingCritical) == 0
	denom := len(src)
	if denom < 1 {
		denom = 1
	}
	c.Score = math.Round(float64(len(rendered))/float64(denom)*1000) / 10
	return c
}

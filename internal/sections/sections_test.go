package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

const sourceReport = `## 📈 브랜드별 스냅샷
노어 GMV 1,234,567원
다나앤페타 GMV 2,000,000원
마치마라 GMV 3,000,000원
브에트와 GMV 4,000,000원
아르앙 GMV 5,000,000원
지재 GMV 6,000,000원
희애 GMV 7,000,000원
## 🚀 Top Performers
## 🚨 Urgent Priorities
## 🎯 Today's Action Items
`

func TestExtract_SourceSections(t *testing.T) {
	res := Extract(document.New(sourceReport, taxonomy.KindSource), taxonomy.Default(), 0)
	assert.Equal(t, 7, res.BrandCount)
	for _, id := range []taxonomy.SectionID{
		taxonomy.SectionBrandSnapshots,
		taxonomy.SectionTopPerformers,
		taxonomy.SectionUrgentPriorities,
		taxonomy.SectionActionItems,
		taxonomy.SectionSufficientBrands,
	} {
		assert.True(t, res.Sections.Has(id), "expected %s", id)
	}
	assert.False(t, res.Sections.Has(taxonomy.SectionMissedOpportunities))
}

func TestExtract_RenderedRequiresEmphasis(t *testing.T) {
	tax := taxonomy.Default()
	plain := document.New(sourceReport, taxonomy.KindLongForm)
	res := Extract(plain, tax, 0)
	assert.Equal(t, 0, res.BrandCount)
	assert.False(t, res.Sections.Has(taxonomy.SectionSufficientBrands))

	emphasized := strings.NewReplacer("노어", "**노어**", "지재", "**지재**").Replace(sourceReport)
	res = Extract(document.New(emphasized, taxonomy.KindLongForm), tax, 2)
	assert.Equal(t, 2, res.BrandCount)
	assert.True(t, res.Sections.Has(taxonomy.SectionSufficientBrands))
}

func TestExtract_Idempotent(t *testing.T) {
	doc := document.New(sourceReport, taxonomy.KindSource)
	tax := taxonomy.Default()
	first := Extract(doc, tax, 0)
	second := Extract(doc, tax, 0)
	require.Equal(t, first.Sections.Sorted(), second.Sections.Sorted())
}

func TestSet_Minus(t *testing.T) {
	a := Set{taxonomy.SectionActionItems: {}, taxonomy.SectionTopPerformers: {}}
	b := Set{taxonomy.SectionTopPerformers: {}}
	assert.Equal(t, []taxonomy.SectionID{taxonomy.SectionActionItems}, a.Minus(b).Sorted())
}

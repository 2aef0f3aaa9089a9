package validate

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/reportguard/internal/dates"
	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/sections"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

var allBrands = []string{"노어", "다나앤페타", "마치마라", "브에트와", "아르앙", "지재", "희애", "퀸즈셀렉션", "베르다"}

func ranked(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d. **[상품%02d] 울 코트** - GMV %d,500,000원\n", i, i, i)
	}
	return b.String()
}

func sourceText() string {
	var b strings.Builder
	b.WriteString("# PB Daily Report 2026-01-24\n## 📈 브랜드별 스냅샷\n")
	for i, name := range allBrands {
		fmt.Fprintf(&b, "%s: GMV %d,688,263원\n", name, i+1)
	}
	b.WriteString("## 🚀 Top Performers\n## 🚨 Urgent Priorities\n## 🎯 Today's Action Items\n## 🔥 Top 10 급성장 상품\n")
	b.WriteString(ranked(10))
	return b.String()
}

func longFormText(skipSection string, skipBrands ...string) string {
	skip := map[string]bool{}
	for _, s := range skipBrands {
		skip[s] = true
	}
	var b strings.Builder
	b.WriteString("# PB Daily Report - 2026-01-24 (토요일)\n## 📈 브랜드별 스냅샷\n")
	for i, name := range allBrands {
		if skip[name] {
			continue
		}
		fmt.Fprintf(&b, "- **%s** GMV %d.7백만\n", name, i+1)
	}
	for _, h := range []string{"## 🚀 Top Performers", "## 🚨 Urgent Priorities", "## 🎯 Today's Action Items", "## 🔥 Top 10 급성장 상품"} {
		if skipSection != "" && strings.Contains(h, skipSection) {
			continue
		}
		b.WriteString(h + "\n")
	}
	b.WriteString(ranked(10))
	return b.String()
}

func reportContext(t *testing.T) Context {
	t.Helper()
	exp, err := dates.Parse("2026-01-24")
	require.NoError(t, err)
	return Context{Expected: exp, ExpectedDay: "토요일", Today: exp.AddDays(1)}
}

func TestValidate_FullReportPasses(t *testing.T) {
	v := New(nil)
	vd, err := v.Validate(Request{
		Source:   document.New(sourceText(), taxonomy.KindSource),
		LongForm: document.New(longFormText(""), taxonomy.KindLongForm),
		Context:  reportContext(t),
	})
	require.NoError(t, err)
	assert.True(t, vd.Pass, vd.Report())
	assert.Equal(t, StatusOK, vd.Status())
	assert.Len(t, vd.Results, 4)
	assert.Equal(t, 100.0, vd.Completeness.Score)
}

func TestValidate_MissingSectionAndBrandsNamed(t *testing.T) {
	v := New(nil)
	vd, err := v.Validate(Request{
		Source:   document.New(sourceText(), taxonomy.KindSource),
		LongForm: document.New(longFormText("Urgent", "지재", "희애"), taxonomy.KindLongForm),
		Context:  reportContext(t),
	})
	require.NoError(t, err)
	assert.False(t, vd.Pass)
	assert.Equal(t, []Criterion{CriterionCompleteness, CriterionEntities}, vd.Failed())
	assert.Equal(t, []taxonomy.SectionID{taxonomy.SectionUrgentPriorities}, vd.Completeness.MissingCritical)
	assert.Equal(t, []string{"지재", "희애"}, vd.Brands.MissingRequired)
	assert.Equal(t, StatusMissingCritical, vd.Status())

	flat := vd.Flat()
	assert.Equal(t, false, flat["is_complete"])
	assert.Equal(t, []string{"urgent_priorities"}, flat["missing_critical"])
	assert.Equal(t, []string{"지재", "희애"}, flat["missing_required_brands"])
	assert.Equal(t, true, flat["date_consistent"])
	assert.Equal(t, true, flat["top10_complete"])

	report := vd.Report()
	assert.Contains(t, report, "❌ FAIL")
	assert.Contains(t, report, "urgent_priorities")
	assert.Contains(t, report, "희애")
}

func TestValidate_RankedShortfall(t *testing.T) {
	lf := strings.Replace(longFormText(""), ranked(10), ranked(7), 1)
	vd, err := New(nil).Validate(Request{
		Source:   document.New(sourceText(), taxonomy.KindSource),
		LongForm: document.New(lf, taxonomy.KindLongForm),
		Context:  reportContext(t),
		Criteria: []Criterion{CriterionRanked},
	})
	require.NoError(t, err)
	flat := vd.Flat()
	assert.Equal(t, false, flat["top10_complete"])
	assert.Equal(t, 7, flat["notion_product_count"])
	assert.Equal(t, false, flat["minimum_threshold_met"])
	assert.Equal(t, StatusRankedMismatch, vd.Status())
}

func TestValidate_StatusPriority(t *testing.T) {
	vd := Verdict{Results: []CriterionResult{
		{Criterion: CriterionBrevity},
		{Criterion: CriterionEntities},
		{Criterion: CriterionRanked},
		{Criterion: CriterionDates},
	}}
	assert.Equal(t, StatusDateMismatch, vd.Status())
	vd.Results = vd.Results[:3]
	assert.Equal(t, StatusRankedMismatch, vd.Status())
	vd.Results = vd.Results[:2]
	assert.Equal(t, StatusMissingEntities, vd.Status())
	vd.Results = vd.Results[:1]
	assert.Equal(t, StatusFormat, vd.Status())
}

func TestValidate_MissingContextIsError(t *testing.T) {
	_, err := New(nil).Validate(Request{
		Source:   document.New(sourceText(), taxonomy.KindSource),
		Criteria: []Criterion{CriterionDates},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingContext))

	_, err = New(nil).Validate(Request{Criteria: []Criterion{CriterionCompleteness}})
	assert.True(t, errors.Is(err, ErrMissingContext))

	_, err = New(nil).Validate(Request{})
	assert.True(t, errors.Is(err, ErrMissingContext))
}

func TestValidate_MessageCriteria(t *testing.T) {
	msg := "오늘 매출이 어제보다 크게 늘어서 모두 기뻤다\n🔥 Top 급성장\n"
	vd, err := New(nil).Validate(Request{
		Message: document.New(msg, taxonomy.KindMessage),
		Criteria: []Criterion{
			CriterionBrevity,
			CriterionMessageElements,
		},
	})
	require.NoError(t, err)
	assert.False(t, vd.Pass)
	assert.Equal(t, StatusFormat, vd.Status())
	flat := vd.Flat()
	assert.Equal(t, false, flat["word_rule_ok"])
	assert.Equal(t, false, flat["elements_present"])
	assert.NotContains(t, flat["missing_elements"], "fast movers header")
}

func TestCompareSections_ScoreNeverGates(t *testing.T) {
	src := sections.Set{taxonomy.SectionBrandSnapshots: {}, taxonomy.SectionTop10Products: {}, taxonomy.SectionMissedOpportunities: {}}
	ren := sections.Set{taxonomy.SectionBrandSnapshots: {}}
	c := CompareSections(src, ren, taxonomy.Default().Critical)
	assert.True(t, c.IsComplete)
	assert.Equal(t, 33.3, c.Score)
	assert.Len(t, c.Missing, 2)

	c = CompareSections(sections.Set{}, sections.Set{}, nil)
	assert.Equal(t, 0.0, c.Score)
	assert.True(t, c.IsComplete)
}

func TestParseCriterion(t *testing.T) {
	c, err := ParseCriterion("unit_correctness")
	require.NoError(t, err)
	assert.Equal(t, CriterionUnits, c)
	_, err = ParseCriterion("vibes")
	assert.Error(t, err)
}

func TestValidate_BareWeekdayFailsDates(t *testing.T) {
	vd, err := New(nil).Validate(Request{
		Message:  document.New("PB Daily Report 2026-01-24 금요일 브리핑", taxonomy.KindMessage),
		Criteria: []Criterion{CriterionDates},
		Context:  reportContext(t),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDateMismatch, vd.Status())
	flat := vd.Flat()
	assert.Equal(t, false, flat["date_consistent"])
	assert.Equal(t, []string{dates.FailDocumentWeekday}, flat["date_failures"])
	assert.Equal(t, map[string][]string{"message": {"금요일"}}, flat["wrong_weekdays"])
}

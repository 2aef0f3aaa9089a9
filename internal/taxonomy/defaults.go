package taxonomy

import "regexp"

var (
	// DefaultRequiredBrands must all be reproduced in the long-form rendering.
	DefaultRequiredBrands = []string{"노어", "다나앤페타", "마치마라", "브에트와", "아르앙", "지재", "희애"}
	// DefaultOptionalBrands are reported when present but never required.
	DefaultOptionalBrands = []string{"퀸즈셀렉션", "베르다"}
	// KoreanWeekdays is indexed Monday=0 … Sunday=6.
	KoreanWeekdays = [7]string{"월요일", "화요일", "수요일", "목요일", "금요일", "토요일", "일요일"}
)

// Default returns the production rule set for the PB daily report.
func Default() *Taxonomy {
	return &Taxonomy{
		Sections: []SectionRule{
			section(SectionBrandSnapshots, `📈 브랜드별 스냅샷|브랜드별.*스냅샷`, `브랜드별.*스냅샷|📈.*브랜드별`),
			section(SectionTopPerformers, `🚀 Top Performers|Top Performers`, `🚀.*Top Performers|Top Performers`),
			section(SectionUrgentPriorities, `🚨 Urgent Priorities|Urgent Priorities`, `🚨.*Urgent Priorities|Urgent Priorities`),
			section(SectionActionItems, `🎯.*Action Items|Today's Action Items`, `🎯.*Action Items|Today's Action Items`),
			section(SectionTop10Products, `🔥 Top 10.*상품|Top 10.*급성장`, `🔥.*Top 10.*상품|Top 10.*급성장`),
			section(SectionMissedOpportunities, `💡 Missed Opportunities|Missed Opportunities`, `💡.*Missed Opportunities|Missed Opportunities`),
			section(SectionRequiredActions, `⚠️.*조치가 필요한|조치가 필요한 상품`, `⚠️.*조치가 필요한|조치가 필요한 상품`),
			section(SectionDetailedAnalysis, `📊 상품별 상세.*분석|상품별.*상세.*분석`, `📊.*상품별 상세.*분석|상품별.*상세.*분석`),
		},
		Critical: []SectionID{
			SectionBrandSnapshots,
			SectionTopPerformers,
			SectionUrgentPriorities,
			SectionActionItems,
			SectionSufficientBrands,
		},
		Brands: BrandsFromNames(DefaultRequiredBrands, DefaultOptionalBrands),

		Quantity:   regexp.MustCompile(`GMV[^\n]*?(\d[\d,]*(?:\.\d+)?)\s*(백만원|백만|만원|억|원)`),
		RankedItem: regexp.MustCompile(`(\d+)\.\s*\*\*\[(.*?)\].*?\*\*.*?GMV.*?(\d+,\d+|\d+).*?원`),

		Dates: []DateRule{
			{ID: "iso", Form: FormISO, Pattern: regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)},
			{ID: "compact", Form: FormCompact, Pattern: regexp.MustCompile(`\b(\d{4})(\d{2})(\d{2})\b`)},
			{ID: "korean-full", Form: FormKoreanFull, Pattern: regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)},
			{ID: "month-day", Form: FormMonthDay, Pattern: regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`)},
			{ID: "weekday", Form: FormWeekday, Pattern: regexp.MustCompile(`([월화수목금토일])요일`)},
			{ID: "dated-weekday", Form: FormDatedWeekday, Pattern: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*\(\s*([월화수목금토일])요일\s*\)`)},
		},
		Weekdays: KoreanWeekdays,

		DisallowedScale: regexp.MustCompile(`GMV\s+[\d,.]+억`),
		CanonicalScale:  regexp.MustCompile(`GMV\s+[\d,.]+백만`),
		RawAmount:       regexp.MustCompile(`GMV\s+[\d,]+원`),
		AmountMention:   regexp.MustCompile(`GMV\s+[\d,.]+`),
		Metrics: []NamedRule{
			named("PB transaction ratio", `거래액비중:\s*\*?\*?[\d,.]+%`),
			named("MD2 SPV comparison", `MD2 SPV:\s*\*?\*?[\d,.]+x`),
		},
		Top3: Top3Rule{
			Header:      regexp.MustCompile(`🏆 주요 상품 TOP 3`),
			Terminators: []string{"**🚨", "**📋"},
			Medal:       regexp.MustCompile(`🥇|🥈|🥉`),
			Entry:       regexp.MustCompile(`GMV [+-][\d,.]+% \| [\d,.]+백만`),
			Size:        3,
		},

		Exemptions: []NamedRule{
			named("bracketed label", `\[.*\]`),
			named("share breakdown", `비중:.*\|.*`),
			named("exposure breakdown", `점유율:.*\|.*\|.*`),
			named("absolute amount", `GMV.*억.*만원`),
			named("numeric with parenthetical", `SPV.*\(`),
			named("hyperlink", `https?://`),
			named("group alert", `<!subteam`),
			named("numbered list", `^\s*[-\d]+\.`),
			named("bullet", `^\s*(?:[•\-]|\*(?:\s|$))`),
			named("details link", `📋.*상세.*분석`),
		},
		Elements: []NamedRule{
			named("share breakdown", `비중:.*GMV.*\|.*노출`),
			named("three-channel exposure", `점유율:.*기획전.*\|.*MD.*\|.*개인화`),
			named("fast movers header", `🔥 Top 급성장`),
			named("dashboard link", `Looker Studio.*lookerstudio\.google\.com`),
			named("group mention", `<!subteam\^[^>\s]+>`),
		},
	}
}

func section(id SectionID, source, rendered string) SectionRule {
	return SectionRule{
		ID:       id,
		Source:   regexp.MustCompile(`(?i)` + source),
		Rendered: regexp.MustCompile(`(?i)` + rendered),
	}
}

func named(name, pattern string) NamedRule {
	return NamedRule{Name: name, Pattern: regexp.MustCompile(pattern)}
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/lookup"
	"github.com/hyperifyio/reportguard/internal/validate"
)

// 16:00 UTC on the 24th is already the 25th in Seoul.
func fixedClock() time.Time { return time.Date(2026, 1, 24, 16, 0, 0, 0, time.UTC) }

var brands = []string{"노어", "다나앤페타", "마치마라", "브에트와", "아르앙", "지재", "희애"}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func fixtures(t *testing.T, dropBrand string) (src, lf string) {
	t.Helper()
	var s, l strings.Builder
	s.WriteString("PB Daily Report 2026-01-24\n📈 브랜드별 스냅샷\n")
	l.WriteString("# PB Daily Report - 2026-01-24 (토요일)\n## 📈 브랜드별 스냅샷\n")
	for i, b := range brands {
		fmt.Fprintf(&s, "%s GMV %d,100,000원\n", b, i+1)
		if b != dropBrand {
			fmt.Fprintf(&l, "**%s** GMV %d.1백만\n", b, i+1)
		}
	}
	for _, h := range []string{"🚀 Top Performers", "🚨 Urgent Priorities", "🎯 Today's Action Items"} {
		s.WriteString(h + "\n")
		l.WriteString("## " + h + "\n")
	}
	for i := 1; i <= 8; i++ {
		line := fmt.Sprintf("%d. **[상품%d] 니트** GMV %d,000,000원\n", i, i, i)
		s.WriteString(line)
		l.WriteString(line)
	}
	wrapped, err := json.Marshal(map[string]string{"daily_intelligence_briefing_report": s.String()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(wrapped), l.String()
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	a, err := New(cfg, fixedClock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestApp_ExpectedDateDefaultsToYesterdayInTimezone(t *testing.T) {
	a := newTestApp(t, Defaults())
	if got := a.Today().String(); got != "2026-01-25" {
		t.Fatalf("Today=%s, want 2026-01-25", got)
	}
	exp, err := a.ExpectedDate()
	if err != nil {
		t.Fatalf("ExpectedDate: %v", err)
	}
	if exp.String() != "2026-01-24" {
		t.Fatalf("ExpectedDate=%s, want 2026-01-24", exp)
	}
	info := NewDateInfo(exp)
	if info.Day != "토요일" || info.WeekdayIndex != 5 || info.Title != "PB Daily Report - 2026-01-24 (토요일)" {
		t.Fatalf("unexpected date info: %+v", info)
	}
}

func TestApp_ValidateReport(t *testing.T) {
	dir := t.TempDir()
	src, lf := fixtures(t, "")
	cfg := Defaults()
	cfg.SourcePath = writeFile(t, dir, "mcp.json", src)
	cfg.LongFormPath = writeFile(t, dir, "notion.md", lf)
	cfg.ExpectedDay = "토요일"

	vd, err := newTestApp(t, cfg).Validate(ReportCriteria)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !vd.Pass {
		t.Fatalf("expected pass:\n%s", vd.Report())
	}
}

func TestApp_ValidateReport_MissingBrand(t *testing.T) {
	dir := t.TempDir()
	src, lf := fixtures(t, "희애")
	cfg := Defaults()
	cfg.SourcePath = writeFile(t, dir, "mcp.json", src)
	cfg.LongFormPath = writeFile(t, dir, "notion.md", lf)
	cfg.MinBrands = 6

	vd, err := newTestApp(t, cfg).Validate(ReportCriteria)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if vd.Status() != validate.StatusMissingEntities {
		t.Fatalf("status=%d, want %d:\n%s", vd.Status(), validate.StatusMissingEntities, vd.Report())
	}
}

func TestApp_InputErrorsMapToExitCodes(t *testing.T) {
	dir := t.TempDir()
	cfg := Defaults()
	cfg.SourcePath = filepath.Join(dir, "missing.json")
	cfg.LongFormPath = writeFile(t, dir, "notion.md", "# page")
	_, err := newTestApp(t, cfg).Validate(ReportCriteria)
	if !errors.Is(err, document.ErrUnreadable) || ExitCode(err) != ExitUnreadable {
		t.Fatalf("missing file: err=%v code=%d", err, ExitCode(err))
	}

	cfg.SourcePath = writeFile(t, dir, "bad.json", `{"daily_intelligence_briefing_report": `)
	_, err = newTestApp(t, cfg).Validate(ReportCriteria)
	if ExitCode(err) != ExitMalformed {
		t.Fatalf("malformed json: err=%v code=%d", err, ExitCode(err))
	}

	cfg.SourcePath = writeFile(t, dir, "ok.md", "PB Daily Report 2026-01-24")
	cfg.ExpectedDate = "someday"
	_, err = newTestApp(t, cfg).Validate(ReportCriteria)
	if ExitCode(err) != ExitMalformed {
		t.Fatalf("bad date: err=%v code=%d", err, ExitCode(err))
	}
}

func TestApp_ConfiguredCriteria(t *testing.T) {
	cfg := Defaults()
	cfg.Criteria = []string{"nope"}
	_, err := newTestApp(t, cfg).Validate(ReportCriteria)
	if ExitCode(err) != ExitMalformed {
		t.Fatalf("unknown criterion should be an input error, got %v", err)
	}
}

type stubProvider struct {
	pages []lookup.Page
	err   error
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) Search(context.Context, string, int) ([]lookup.Page, error) {
	return s.pages, s.err
}

func TestApp_Duplicate(t *testing.T) {
	a := newTestApp(t, Defaults()).WithProvider(stubProvider{pages: []lookup.Page{
		{ID: "p1", Title: "PB Daily Report - 2026-01-24 (토요일)"},
	}})
	d, err := a.Duplicate(context.Background(), "")
	if code := DuplicateExitCode(d, err); code != ExitDuplicate {
		t.Fatalf("code=%d err=%v", code, err)
	}

	a = newTestApp(t, Defaults()).WithProvider(stubProvider{err: errors.New("503")})
	d, err = a.Duplicate(context.Background(), "")
	if code := DuplicateExitCode(d, err); code != ExitLookup {
		t.Fatalf("code=%d err=%v", code, err)
	}

	_, err = newTestApp(t, Defaults()).Duplicate(context.Background(), "")
	if code := DuplicateExitCode(lookup.Duplicate{}, err); code != ExitUsage {
		t.Fatalf("missing token should be a usage error, got %d (%v)", code, err)
	}
}

func TestApp_Envelope(t *testing.T) {
	res := newTestApp(t, Defaults()).Envelope([]byte(`{"type":"result","subtype":"error_max_turns"}`))
	if res.Status != 7 {
		t.Fatalf("status=%d, want 7", res.Status)
	}
}

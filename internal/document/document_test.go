package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

func TestNew_ComposesDecomposedHangul(t *testing.T) {
	// "노어" written as conjoining jamo
	decomposed := "\u1102\u1169\u110b\u1165"
	doc := New(decomposed+"\r\n", taxonomy.KindSource)
	assert.Equal(t, "노어\n", doc.Text())
}

func TestUnwrap_PriorityOrder(t *testing.T) {
	raw := `{"report": "second", "daily_intelligence_briefing_report": "first", "result": "third"}`
	u, err := Unwrap(raw, DefaultStrategies)
	require.NoError(t, err)
	assert.Equal(t, "first", u.Text)
	assert.Equal(t, "daily_intelligence_briefing_report", u.Strategy)
}

func TestUnwrap_ResultWithNestedJSONString(t *testing.T) {
	raw := `{"type": "result", "result": "{\"report\": \"inner text\"}"}`
	u, err := Unwrap(raw, DefaultStrategies)
	require.NoError(t, err)
	assert.Equal(t, "inner text", u.Text)
	assert.Equal(t, "result", u.Strategy)
}

func TestUnwrap_NoKeyKeepsWholeDocument(t *testing.T) {
	raw := `{"other": 1}`
	u, err := Unwrap(raw, DefaultStrategies)
	require.NoError(t, err)
	assert.Equal(t, raw, u.Text)
	assert.Equal(t, "whole document", u.Strategy)
}

func TestUnwrap_PlainTextPassesThrough(t *testing.T) {
	u, err := Unwrap("📈 브랜드별 스냅샷", DefaultStrategies)
	require.NoError(t, err)
	assert.Equal(t, "plain", u.Strategy)
}

func TestUnwrap_MalformedJSON(t *testing.T) {
	_, err := Unwrap(`{"report": "unterminated`, DefaultStrategies)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestFromHTML_KeepsEmphasisAndNumbering(t *testing.T) {
	page := `<!doctype html><html><head><title>PB Daily Report</title></head><body>
<nav>menu</nav>
<h2>📈 브랜드별 스냅샷</h2>
<p><strong>노어</strong>: GMV 1,234,567원</p>
<ol>
<li><strong>[지재] 데님 스커트</strong> GMV 3,170,385원</li>
<li><strong>[노어] 니트</strong> GMV 1,527,853원</li>
</ol>
</body></html>`
	text := FromHTML([]byte(page))
	assert.Contains(t, text, "## 📈 브랜드별 스냅샷")
	assert.Contains(t, text, "**노어**: GMV 1,234,567원")
	assert.Contains(t, text, "1. **[지재] 데님 스커트** GMV 3,170,385원")
	assert.Contains(t, text, "2. **[노어] 니트** GMV 1,527,853원")
	assert.NotContains(t, text, "menu")
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.md"), taxonomy.KindLongForm)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))

	p := filepath.Join(t.TempDir(), "source.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"report": `), 0o600))
	_, err = ReadFile(p, taxonomy.KindSource)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestReadFile_HTMLRendering(t *testing.T) {
	p := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(p, []byte(`<html><body><p><b>희애</b> GMV 10원</p></body></html>`), 0o600))
	l, err := ReadFile(p, taxonomy.KindLongForm)
	require.NoError(t, err)
	assert.Equal(t, "html", l.Strategy)
	assert.True(t, strings.Contains(l.Document.Text(), "**희애** GMV 10원"))
	assert.Equal(t, p, l.Document.Origin)
}

// Package brevity enforces the short-statement rule on the notification
// message and checks that its mandatory elements are present.
package brevity

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// DefaultLimit is the maximum number of words in a non-exempt statement.
const DefaultLimit = 6

// Violation is a statement over the word limit.
type Violation struct {
	Statement string
	Words     int
}

// Exemption records a statement skipped by a named exemption rule.
type Exemption struct {
	Statement string
	Rule      string
}

// Result is the outcome of Check.
type Result struct {
	WithinLimit     bool
	Limit           int
	Violations      []Violation
	Exempted        []Exemption
	MissingElements []string
	ElementsPresent bool
}

// OK reports whether both the word rule and the element rule hold.
func (r Result) OK() bool { return r.WithinLimit && r.ElementsPresent }

var (
	markupRe = regexp.MustCompile(`[*#\-\[\](){}]`)
	urlRe    = regexp.MustCompile(`https?://\S+`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
)

// Check applies the word limit to every non-exempt statement of message and
// checks the mandatory elements. limit <= 0 selects DefaultLimit.
func Check(message string, tax *taxonomy.Taxonomy, limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	res := Result{Limit: limit}
	for _, line := range strings.Split(message, "\n") {
		for _, s := range Statements(line) {
			if rule, ok := exempt(s, tax); ok {
				res.Exempted = append(res.Exempted, Exemption{Statement: s, Rule: rule})
				continue
			}
			if n := CountWords(s); n > limit {
				res.Violations = append(res.Violations, Violation{Statement: s, Words: n})
			}
		}
	}
	res.WithinLimit = len(res.Violations) == 0

	for _, el := range tax.Elements {
		if !el.Pattern.MatchString(message) {
			res.MissingElements = append(res.MissingElements, el.Name)
		}
	}
	res.ElementsPresent = len(res.MissingElements) == 0
	return res
}

func exempt(s string, tax *taxonomy.Taxonomy) (string, bool) {
	for _, e := range tax.Exemptions {
		if e.Pattern.MatchString(s) {
			return e.Name, true
		}
	}
	return "", false
}

// Statements splits one line after '.', '!' or '?' when followed by
// whitespace or the end of the line. Decimals such as 2.34 stay intact, and
// the period of a leading list number ("1. ") stays with its item.
func Statements(line string) []string {
	var out []string
	rs := []rune(line)
	start := 0
	for i, r := range rs {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(rs) && !unicode.IsSpace(rs[i+1]) {
			continue
		}
		if r == '.' && start == 0 && listNumber(rs[:i]) {
			continue
		}
		if s := strings.TrimSpace(string(rs[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(rs[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func listNumber(prefix []rune) bool {
	digits := 0
	for _, r := range prefix {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r) && digits == 0:
		default:
			return false
		}
	}
	return digits > 0
}

// CountWords counts whitespace-separated words after removing markup, URLs,
// tags and emoji.
func CountWords(s string) int {
	s = urlRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = markupRe.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.So, r) || unicode.Is(unicode.Sk, r) || r == '\uFE0F' || r == '\u200D' {
			return -1
		}
		return r
	}, s)
	return len(strings.Fields(s))
}

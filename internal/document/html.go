package document

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML converts an exported page into the Markdown-like text the
// long-form rules expect: <strong>/<b> become **…**, headings keep their
// emoji text on their own line, and ordered list items are numbered "N. ".
func FromHTML(input []byte) string {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		return ""
	}
	root := findFirst(node, "main")
	if root == nil {
		root = findFirst(node, "article")
	}
	if root == nil {
		root = findFirst(node, "body")
	}
	if root == nil {
		return ""
	}
	var b strings.Builder
	w := &htmlWriter{b: &b}
	w.walk(root)
	return normalizeWhitespace(b.String())
}

// LooksLikeHTML sniffs the first bytes of input.
func LooksLikeHTML(input []byte) bool {
	head := strings.ToLower(strings.TrimSpace(string(input[:min(len(input), 512)])))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

type htmlWriter struct {
	b *strings.Builder
	// counters holds the next item number for each open <ol>; 0 for <ul>.
	counters []int
}

func (w *htmlWriter) walk(n *html.Node) {
	if n.Type == html.TextNode {
		w.b.WriteString(strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(n.Data))
		return
	}
	if n.Type != html.ElementNode {
		w.children(n)
		return
	}
	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript", "nav", "footer", "iframe":
		return
	case "br":
		w.b.WriteString("\n")
	case "hr":
		w.b.WriteString("\n---\n")
	case "strong", "b":
		w.b.WriteString("**")
		w.children(n)
		w.b.WriteString("**")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(n.Data[1:])
		w.b.WriteString("\n\n" + strings.Repeat("#", level) + " ")
		w.children(n)
		w.b.WriteString("\n\n")
	case "p", "div", "blockquote", "tr":
		w.b.WriteString("\n")
		w.children(n)
		w.b.WriteString("\n")
	case "td", "th":
		w.b.WriteString(" | ")
		w.children(n)
	case "ol":
		w.counters = append(w.counters, 1)
		w.children(n)
		w.counters = w.counters[:len(w.counters)-1]
		w.b.WriteString("\n")
	case "ul":
		w.counters = append(w.counters, 0)
		w.children(n)
		w.counters = w.counters[:len(w.counters)-1]
		w.b.WriteString("\n")
	case "li":
		w.b.WriteString("\n")
		if k := len(w.counters); k > 0 && w.counters[k-1] > 0 {
			w.b.WriteString(strconv.Itoa(w.counters[k-1]) + ". ")
			w.counters[k-1]++
		} else {
			w.b.WriteString("- ")
		}
		w.children(n)
	case "a":
		href := attr(n, "href")
		w.children(n)
		if href != "" && strings.HasPrefix(href, "http") {
			w.b.WriteString(" (" + href + ")")
		}
	default:
		w.children(n)
	}
}

func (w *htmlWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, trimmed)
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

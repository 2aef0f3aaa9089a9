// Package document turns raw inputs into immutable, normalized texts tagged
// with the form they were produced in.
package document

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

var (
	// ErrMalformed marks an input that claims a structure (JSON wrapper,
	// envelope) it does not have.
	ErrMalformed = errors.New("malformed input")
	// ErrUnreadable marks an input that could not be read at all.
	ErrUnreadable = errors.New("unreadable input")
)

// Document is an immutable text blob plus its declared kind.
type Document struct {
	Kind taxonomy.Kind
	// Origin is a human label for diagnostics (file path, "stdin").
	Origin string

	text string
}

// New normalizes text to NFC with LF line endings. Korean text copied from
// some editors arrives decomposed, which would never match the composed
// literals in the taxonomy.
func New(text string, kind taxonomy.Kind) Document {
	t := strings.ReplaceAll(text, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	return Document{Kind: kind, text: norm.NFC.String(t)}
}

// Text returns the normalized text.
func (d Document) Text() string { return d.text }

// Empty reports whether the document has no non-whitespace content.
func (d Document) Empty() bool { return strings.TrimSpace(d.text) == "" }

// WithOrigin returns a copy labelled with origin.
func (d Document) WithOrigin(origin string) Document {
	d.Origin = origin
	return d
}

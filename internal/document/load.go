package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperifyio/reportguard/internal/taxonomy"
)

// Loaded is a document together with how its payload was obtained.
type Loaded struct {
	Document Document
	// Strategy is the unwrap strategy for sources, "html" for converted
	// pages and "plain" otherwise.
	Strategy string
}

// ReadFile loads path as a document of the given kind. "-" reads stdin.
func ReadFile(path string, kind taxonomy.Kind) (Loaded, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
		path = "stdin"
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return Loaded{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return Parse(b, kind, path)
}

// Parse builds a document from raw bytes. Sources are unwrapped from their
// JSON envelope; rendered pages exported as HTML are converted to text.
func Parse(b []byte, kind taxonomy.Kind, origin string) (Loaded, error) {
	ext := strings.ToLower(filepath.Ext(origin))
	if kind.Rendered() && (ext == ".html" || ext == ".htm" || LooksLikeHTML(b)) {
		return Loaded{Document: New(FromHTML(b), kind).WithOrigin(origin), Strategy: "html"}, nil
	}
	if kind == taxonomy.KindSource {
		u, err := Unwrap(string(b), DefaultStrategies)
		if err != nil {
			return Loaded{}, fmt.Errorf("%s: %w", origin, err)
		}
		return Loaded{Document: New(u.Text, kind).WithOrigin(origin), Strategy: u.Strategy}, nil
	}
	return Loaded{Document: New(string(b), kind).WithOrigin(origin), Strategy: "plain"}, nil
}

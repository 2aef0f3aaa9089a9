// Package lookup asks a page index whether a report for a date was already
// published.
package lookup

import (
	"context"
	"time"
)

// Page represents a single published page returned by a provider.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
	// Query is the search query that surfaced the page.
	Query  string `json:"search_query,omitempty"`
	Source string `json:"-"` // provider name for observability
}

// Provider is a minimal interface for page indexes.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Page, error)
	Name() string
}

package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReportTitle is the marker every daily report title carries.
const ReportTitle = "PB Daily Report"

// ErrLookup marks a lookup where no query could be answered.
var ErrLookup = errors.New("duplicate lookup failed")

// Duplicate is the outcome of CheckDuplicate.
type Duplicate struct {
	HasDuplicate bool   `json:"has_duplicate"`
	Date         string `json:"date"`
	SearchCount  int    `json:"search_count"`
	Pages        []Page `json:"existing_pages,omitempty"`
	Latest       *Page  `json:"latest_page,omitempty"`
	Message      string `json:"message"`
}

// Queries returns the search queries for date, the explicit title first.
func Queries(date, title string) []string {
	qs := []string{
		ReportTitle + " " + date,
		ReportTitle + " - " + date,
		date,
	}
	if strings.TrimSpace(title) != "" {
		qs = append([]string{title}, qs...)
	}
	return qs
}

// CheckDuplicate runs every query against p and keeps pages whose title holds
// both date and ReportTitle, deduplicated by ID. A failing query is logged and
// skipped; the call fails only when every query failed.
func CheckDuplicate(ctx context.Context, p Provider, date, title string) (Duplicate, error) {
	d := Duplicate{Date: date}
	seen := map[string]struct{}{}
	queries := Queries(date, title)
	var failures []error
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return d, err
		}
		pages, err := p.Search(ctx, q, 20)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Str("query", q).Msg("lookup query failed")
			failures = append(failures, err)
			continue
		}
		log.Debug().Str("provider", p.Name()).Str("query", q).Int("results", len(pages)).Msg("lookup query")
		for _, pg := range pages {
			if !strings.Contains(pg.Title, date) || !strings.Contains(pg.Title, ReportTitle) {
				continue
			}
			if _, dup := seen[pg.ID]; dup {
				continue
			}
			seen[pg.ID] = struct{}{}
			pg.Query = q
			d.Pages = append(d.Pages, pg)
		}
	}
	if len(failures) == len(queries) {
		return d, fmt.Errorf("%w: %w", ErrLookup, errors.Join(failures...))
	}
	d.SearchCount = len(d.Pages)
	if len(d.Pages) == 0 {
		d.Message = fmt.Sprintf("no %s exists for %s", ReportTitle, date)
		return d, nil
	}
	latest := d.Pages[0]
	for _, pg := range d.Pages[1:] {
		if pg.Timestamp.After(latest.Timestamp) {
			latest = pg
		}
	}
	d.HasDuplicate = true
	d.Latest = &latest
	d.Message = fmt.Sprintf("%s for %s already exists: %s", ReportTitle, date, latest.Title)
	return d, nil
}

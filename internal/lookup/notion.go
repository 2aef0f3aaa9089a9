package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultNotionURL is the public Notion API base.
const DefaultNotionURL = "https://api.notion.com"

// NotionVersion is sent with every request.
const NotionVersion = "2022-06-28"

// Notion implements Provider against the Notion /v1/search endpoint.
type Notion struct {
	BaseURL    string // optional; defaults to DefaultNotionURL
	Token      string
	HTTPClient *http.Client
	UserAgent  string // optional custom UA
}

func (n *Notion) Name() string { return "notion" }

func (n *Notion) Search(ctx context.Context, query string, limit int) ([]Page, error) {
	if strings.TrimSpace(n.Token) == "" {
		return nil, fmt.Errorf("missing notion token")
	}
	if limit <= 0 {
		limit = 10
	}
	base := n.BaseURL
	if base == "" {
		base = DefaultNotionURL
	}
	body, err := json.Marshal(notionSearchRequest{
		Query:    query,
		Filter:   &notionFilter{Property: "object", Value: "page"},
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+n.Token)
	req.Header.Set("Notion-Version", NotionVersion)
	req.Header.Set("Content-Type", "application/json")
	if n.UserAgent != "" {
		req.Header.Set("User-Agent", n.UserAgent)
	}
	hc := n.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("notion status: %d", resp.StatusCode)
	}
	var sr notionSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode notion response: %w", err)
	}
	out := make([]Page, 0, len(sr.Results))
	for _, r := range sr.Results {
		title := r.title()
		if r.ID == "" || title == "" {
			continue
		}
		out = append(out, Page{
			ID:        r.ID,
			Title:     title,
			URL:       r.URL,
			Timestamp: r.LastEditedTime,
			Source:    n.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type notionSearchRequest struct {
	Query    string        `json:"query"`
	Filter   *notionFilter `json:"filter,omitempty"`
	PageSize int           `json:"page_size,omitempty"`
}

type notionFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type notionSearchResponse struct {
	Results []notionPage `json:"results"`
}

type notionPage struct {
	Object         string    `json:"object"`
	ID             string    `json:"id"`
	URL            string    `json:"url"`
	LastEditedTime time.Time `json:"last_edited_time"`
	Properties     map[string]struct {
		Type  string `json:"type"`
		Title []struct {
			PlainText string `json:"plain_text"`
		} `json:"title"`
	} `json:"properties"`
}

// title joins the plain text of whichever property has type "title"; its name
// varies per database.
func (p notionPage) title() string {
	for _, prop := range p.Properties {
		if prop.Type != "title" {
			continue
		}
		var b strings.Builder
		for _, t := range prop.Title {
			b.WriteString(t.PlainText)
		}
		return strings.TrimSpace(b.String())
	}
	return ""
}

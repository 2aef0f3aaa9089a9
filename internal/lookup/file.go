package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// FileProvider loads known pages from a local JSON file for offline/testing use.
// The JSON file format is an array of objects:
// {"id": "...", "title": "...", "url": "...", "timestamp": "RFC3339"}.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Page, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read page index: %w", err)
	}
	var raw []Page
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse page index %s: %w", f.Path, err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Page, 0, len(raw))
	for _, p := range raw {
		if p.ID == "" || p.Title == "" {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(p.Title), q) {
			p.Source = f.Name()
			out = append(out, p)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

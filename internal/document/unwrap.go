package document

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Strategy extracts the text payload from a decoded JSON wrapper. It returns
// ok=false when the wrapper does not carry its key.
type Strategy struct {
	Name    string
	Extract func(obj map[string]any) (payload string, ok bool)
}

// DefaultStrategies lists the payload keys in priority order. Unwrap keeps
// the whole document when none of them matches.
var DefaultStrategies = append(append([]Strategy(nil), reportStrategies...),
	Strategy{Name: "result", Extract: resultPayload},
)

var reportStrategies = []Strategy{
	stringKey("daily_intelligence_briefing_report"),
	stringKey("report"),
}

// Unwrapped is the outcome of Unwrap.
type Unwrapped struct {
	Text string
	// Strategy names the rule that produced Text; "plain" when the input
	// was not JSON and "whole document" when no key matched.
	Strategy string
}

// Unwrap returns the text payload of raw. Inputs that do not look like a JSON
// object are returned unchanged. An input that starts like a JSON object but
// does not decode is an ErrMalformed error.
func Unwrap(raw string, strategies []Strategy) (Unwrapped, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return Unwrapped{Text: raw, Strategy: "plain"}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return Unwrapped{}, fmt.Errorf("%w: json wrapper: %v", ErrMalformed, err)
	}
	for _, s := range strategies {
		if payload, ok := s.Extract(obj); ok {
			return Unwrapped{Text: payload, Strategy: s.Name}, nil
		}
	}
	return Unwrapped{Text: raw, Strategy: "whole document"}, nil
}

func stringKey(key string) Strategy {
	return Strategy{
		Name: key,
		Extract: func(obj map[string]any) (string, bool) {
			v, ok := obj[key]
			if !ok {
				return "", false
			}
			switch t := v.(type) {
			case string:
				return t, true
			case nil:
				return "", false
			default:
				b, err := json.Marshal(t)
				if err != nil {
					return "", false
				}
				return string(b), true
			}
		},
	}
}

// resultPayload handles agent wrappers whose "result" is either prose, a JSON
// string that itself wraps a report, or a nested object.
func resultPayload(obj map[string]any) (string, bool) {
	v, ok := obj["result"]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		inner := strings.TrimSpace(t)
		if strings.HasPrefix(inner, "{") {
			var nested map[string]any
			if err := json.Unmarshal([]byte(inner), &nested); err == nil {
				for _, s := range reportStrategies {
					if p, ok := s.Extract(nested); ok {
						return p, true
					}
				}
			}
		}
		return t, true
	case map[string]any:
		for _, s := range reportStrategies {
			if p, ok := s.Extract(t); ok {
				return p, true
			}
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Package envelope checks the result wrapper printed by the report-publishing
// agent: the wrapper must be a successful result whose body carries a JSON
// object naming the published page, message and run.
package envelope

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Exit statuses, one per failure cause.
const (
	StatusOK            = 0
	StatusWrapperError  = 2
	StatusMissingInner  = 3
	StatusMissingFields = 4
	StatusNotOK         = 5
	StatusEmptyIDs      = 6
	StatusMaxTurns      = 7
)

// RequiredFields must all be present in the inner object.
var RequiredFields = []string{"status", "notion_page_id", "slack_ts", "run_id"}

// Inner is the publication summary embedded in the wrapper's result text.
type Inner struct {
	Status       string `json:"status"`
	NotionPageID string `json:"notion_page_id"`
	SlackTS      string `json:"slack_ts"`
	RunID        string `json:"run_id"`
}

// Result is the outcome of Check.
type Result struct {
	Status int    `json:"status"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
	Inner  *Inner `json:"inner,omitempty"`
}

type wrapper struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	IsError bool   `json:"is_error"`
	Result  string `json:"result"`
}

// innerRe finds the single-line object inside the model's reply.
var innerRe = regexp.MustCompile(`\{.*\}`)

// Check validates raw wrapper output. The first failing rule decides the
// status.
func Check(raw []byte) Result {
	var w wrapper
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &w); err != nil {
		return fail(StatusWrapperError, fmt.Sprintf("cli wrapper is not JSON: %v", err))
	}
	if w.Type != "result" || w.IsError {
		return fail(StatusWrapperError, "cli wrapper error")
	}
	if w.Subtype == "error_max_turns" {
		return fail(StatusMaxTurns, "hit max turns limit")
	}
	m := innerRe.FindString(w.Result)
	if m == "" {
		return fail(StatusMissingInner, "missing inner json")
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(m), &fields); err != nil {
		return fail(StatusMissingInner, fmt.Sprintf("inner json malformed: %v", err))
	}
	var missing []string
	for _, k := range RequiredFields {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fail(StatusMissingFields, "missing fields: "+strings.Join(missing, ", "))
	}
	in := &Inner{
		Status:       text(fields["status"]),
		NotionPageID: text(fields["notion_page_id"]),
		SlackTS:      text(fields["slack_ts"]),
		RunID:        text(fields["run_id"]),
	}
	if in.Status != "ok" {
		r := fail(StatusNotOK, fmt.Sprintf("status not ok: %q", in.Status))
		r.Inner = in
		return r
	}
	if in.NotionPageID == "" || in.SlackTS == "" {
		r := fail(StatusEmptyIDs, "empty ids")
		r.Inner = in
		return r
	}
	return Result{Status: StatusOK, OK: true, Reason: "OK", Inner: in}
}

func fail(status int, reason string) Result {
	return Result{Status: status, Reason: reason}
}

// text renders a JSON scalar as a string; null, false and zero are empty.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return ""
	case float64:
		if x == 0 {
			return ""
		}
		return fmt.Sprintf("%v", x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

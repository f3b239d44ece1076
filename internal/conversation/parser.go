// Package conversation parses model-produced dialogue plans and extracts
// conversational replies from target API responses.
package conversation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Section labels expected in model planning output. The model is prompted to
// emit these, but output is free-form text and any section may be missing or
// out of order.
const (
	labelTestMessage = "TEST_MESSAGE:"
	labelPlan        = "CONVERSATION_PLAN:"
	labelAnalysis    = "ANALYSIS:"
)

var sectionLabels = []string{labelTestMessage, labelPlan, labelAnalysis}

// Plan is the parsed result of a model planning response.
type Plan struct {
	// TestMessage is the literal opening message to send to the target.
	TestMessage string
	// Turns are planned follow-up beat descriptions, in order. May be empty.
	Turns []string
	// Analysis is free-text reasoning the model attached to the plan.
	Analysis string
}

// ParsePlan extracts the labeled sections from free-form model output.
// Parsing is best effort: a missing section yields an empty value, never an
// error. Section order is not assumed.
func ParsePlan(text string) Plan {
	return Plan{
		TestMessage: section(text, labelTestMessage),
		Turns:       parseTurns(section(text, labelPlan)),
		Analysis:    section(text, labelAnalysis),
	}
}

// section returns the trimmed text between label and the next known label
// (or end of input). Empty when the label is absent.
func section(text, label string) string {
	start := strings.Index(text, label)
	if start < 0 {
		return ""
	}
	body := text[start+len(label):]

	end := len(body)
	for _, other := range sectionLabels {
		if other == label {
			continue
		}
		if idx := strings.Index(body, other); idx >= 0 && idx < end {
			end = idx
		}
	}
	return strings.TrimSpace(body[:end])
}

var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s*`)

// parseTurns interprets a CONVERSATION_PLAN body. The model usually emits a
// JSON array of strings, but numbered or bulleted lines appear often enough
// that both forms are accepted.
func parseTurns(body string) []string {
	if body == "" {
		return nil
	}

	if idx := strings.IndexByte(body, '['); idx >= 0 {
		if turns, ok := parseJSONTurns(body[idx:]); ok {
			return turns
		}
	}

	var turns []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line != "" {
			turns = append(turns, line)
		}
	}
	return turns
}

// parseJSONTurns reports whether src parsed as a JSON array at all. A
// successfully parsed array with no usable turns, the literal [] in
// particular, is a valid zero-turn plan and must not reach the line
// fallback.
func parseJSONTurns(src string) ([]string, bool) {
	repaired, err := jsonrepair.JSONRepair(src)
	if err != nil {
		return nil, false
	}

	var items []any
	if err := json.Unmarshal([]byte(repaired), &items); err != nil {
		return nil, false
	}

	turns := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				turns = append(turns, s)
			}
		case map[string]any:
			// Some models emit [{"message": "..."}] shaped plans.
			for _, key := range []string{"message", "description", "turn"} {
				if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
					turns = append(turns, strings.TrimSpace(s))
					break
				}
			}
		}
	}
	if len(turns) == 0 {
		return nil, true
	}
	return turns, true
}

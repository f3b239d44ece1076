// Package extract recovers structured evaluations from raw LLM output.
//
// Model responses that should be JSON frequently arrive wrapped in prose,
// with trailing commas, unquoted keys, or truncated brackets. Extract is
// total: any input string yields a well-formed envelope, falling back to an
// empty one when nothing can be recovered.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Candidate is a single unvalidated evaluation entry as parsed from model
// output. Field types are checked later by Filter, not here.
type Candidate map[string]any

// Envelope is the normalized wrapper around extracted evaluation entries.
type Envelope struct {
	Evaluations []Candidate `json:"evaluations"`
}

// Evaluation is a validated test-generation entry.
type Evaluation struct {
	Scenario       string `json:"scenario"`
	ExpectedOutput string `json:"expectedOutput"`
}

// Extract locates the first JSON array (or, failing that, object) in raw,
// repairs common structural defects, and normalizes the parsed value to an
// Envelope. It never fails: irrecoverable input yields an empty envelope.
func Extract(raw string) Envelope {
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		start = strings.IndexByte(raw, '{')
	}
	if start < 0 {
		return Envelope{Evaluations: []Candidate{}}
	}

	repaired, err := jsonrepair.JSONRepair(raw[start:])
	if err != nil {
		return Envelope{Evaluations: []Candidate{}}
	}

	var parsed any
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return Envelope{Evaluations: []Candidate{}}
	}

	switch v := parsed.(type) {
	case []any:
		return Envelope{Evaluations: toCandidates(v)}
	case map[string]any:
		if evals, ok := v["evaluations"].([]any); ok {
			return Envelope{Evaluations: toCandidates(evals)}
		}
		return Envelope{Evaluations: []Candidate{}}
	default:
		return Envelope{Evaluations: []Candidate{}}
	}
}

func toCandidates(items []any) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			candidates = append(candidates, Candidate(m))
		} else {
			// Keep non-object entries as empty candidates so the filter
			// counts them among the rejected.
			candidates = append(candidates, Candidate{})
		}
	}
	return candidates
}

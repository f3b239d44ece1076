package extract

import (
	"errors"
	"strings"
)

// ErrNoValidEvaluations is returned when filtering leaves an empty set.
// Callers cannot proceed with an empty test suite, so this is a hard failure
// rather than an empty success.
var ErrNoValidEvaluations = errors.New("no valid evaluations generated")

// Stats reports the outcome of filtering an envelope.
type Stats struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Filtered int `json:"filtered"`
}

// Filter keeps only candidates whose scenario and expectedOutput are strings
// with non-whitespace content, trimming both. Invalid entries are dropped and
// counted, never repaired. Zero survivors is a hard failure.
func Filter(env Envelope) ([]Evaluation, Stats, error) {
	stats := Stats{Total: len(env.Evaluations)}

	evaluations := make([]Evaluation, 0, len(env.Evaluations))
	for _, c := range env.Evaluations {
		scenario, ok := stringField(c, "scenario")
		if !ok {
			continue
		}
		expected, ok := stringField(c, "expectedOutput")
		if !ok {
			continue
		}
		evaluations = append(evaluations, Evaluation{
			Scenario:       scenario,
			ExpectedOutput: expected,
		})
	}

	stats.Valid = len(evaluations)
	stats.Filtered = stats.Total - stats.Valid

	if stats.Valid == 0 {
		return nil, stats, ErrNoValidEvaluations
	}
	return evaluations, stats, nil
}

func stringField(c Candidate, key string) (string, bool) {
	s, ok := c[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

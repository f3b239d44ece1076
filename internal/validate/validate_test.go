package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
)

func TestResponseFormat(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format map[string]any
		want   bool
	}{
		{
			name:   "all fields present",
			raw:    `{"response": "hi", "sessionId": "s1"}`,
			format: map[string]any{"response": "string", "sessionId": "string"},
			want:   true,
		},
		{
			name:   "missing field",
			raw:    `{"response": "hi"}`,
			format: map[string]any{"response": "string", "sessionId": "string"},
			want:   false,
		},
		{
			name:   "nested fields present",
			raw:    `{"data": {"reply": "x", "ts": 1}}`,
			format: map[string]any{"data": map[string]any{"reply": "string"}},
			want:   true,
		},
		{
			name:   "nested field missing",
			raw:    `{"data": {"ts": 1}}`,
			format: map[string]any{"data": map[string]any{"reply": "string"}},
			want:   false,
		},
		{
			name:   "empty declaration accepts anything",
			raw:    `{"whatever": true}`,
			format: nil,
			want:   true,
		},
		{
			name:   "invalid json fails declared format",
			raw:    `not json`,
			format: map[string]any{"response": "string"},
			want:   false,
		},
		{
			name:   "null field still counts as present",
			raw:    `{"response": null}`,
			format: map[string]any{"response": "string"},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResponseFormat([]byte(tt.raw), tt.format))
		})
	}
}

func TestCondition(t *testing.T) {
	raw := []byte(`{"response": "Your table is booked for 7pm", "status": "confirmed"}`)

	tests := []struct {
		name  string
		rules []target.Rule
		want  bool
	}{
		{
			name:  "no rules",
			rules: nil,
			want:  true,
		},
		{
			name:  "contains holds",
			rules: []target.Rule{{Path: "response", Condition: "contains", Value: "booked"}},
			want:  true,
		},
		{
			name:  "contains fails",
			rules: []target.Rule{{Path: "response", Condition: "contains", Value: "cancelled"}},
			want:  false,
		},
		{
			name:  "equals holds",
			rules: []target.Rule{{Path: "status", Condition: "equals", Value: "confirmed"}},
			want:  true,
		},
		{
			name:  "matches regexp",
			rules: []target.Rule{{Path: "response", Condition: "matches", Value: `\d+pm`}},
			want:  true,
		},
		{
			name:  "exists default condition",
			rules: []target.Rule{{Path: "status"}},
			want:  true,
		},
		{
			name:  "path missing",
			rules: []target.Rule{{Path: "nope", Condition: "contains", Value: "x"}},
			want:  false,
		},
		{
			name: "all rules must hold",
			rules: []target.Rule{
				{Path: "status", Condition: "equals", Value: "confirmed"},
				{Path: "response", Condition: "contains", Value: "cancelled"},
			},
			want: false,
		},
		{
			name:  "whole payload rule",
			rules: []target.Rule{{Condition: "contains", Value: "7pm"}},
			want:  true,
		},
		{
			name:  "unknown condition fails closed",
			rules: []target.Rule{{Path: "status", Condition: "fuzzy", Value: "confirmed"}},
			want:  false,
		},
		{
			name:  "bad regexp fails closed",
			rules: []target.Rule{{Path: "response", Condition: "matches", Value: "("}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(raw, tt.rules))
		})
	}
}

func TestValidatorsDoNotMutateArguments(t *testing.T) {
	format := map[string]any{"response": "string"}
	rules := []target.Rule{{Path: "response", Condition: "contains", Value: "hi"}}
	raw := []byte(`{"response": "hi"}`)

	_ = ResponseFormat(raw, format)
	_ = Condition(raw, rules)

	assert.Equal(t, map[string]any{"response": "string"}, format)
	assert.Equal(t, "contains", rules[0].Condition)
	assert.Equal(t, `{"response": "hi"}`, string(raw))
}

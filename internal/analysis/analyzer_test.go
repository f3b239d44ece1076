package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/testutil"
)

func TestAnalyzeParsesReport(t *testing.T) {
	client := &testutil.MockLLMClient{
		DefaultResponse: `{"categorizedResults": {"passed": 3, "failed": 1},
"insights": ["fails on multi-turn context"],
"summary": "mostly solid",
"improvements": ["add conversation memory"]}`,
	}

	a := NewAnalyzer(client, Config{Model: "judge-model"})
	report, err := a.Analyze(context.Background(), []byte(`[{"passedTest": true}]`))
	require.NoError(t, err)

	assert.Equal(t, "mostly solid", report.Summary)
	assert.Equal(t, []string{"fails on multi-turn context"}, report.Insights)
	assert.Equal(t, []string{"add conversation memory"}, report.Improvements)
	assert.Equal(t, float64(3), report.CategorizedResults["passed"])

	assert.Equal(t, "judge-model", client.LastRequest().Model)
}

func TestAnalyzeRepairsNearJSON(t *testing.T) {
	client := &testutil.MockLLMClient{
		DefaultResponse: `Here is my analysis: {"summary": "ok", "insights": ["a", "b",],}`,
	}

	a := NewAnalyzer(client, Config{})
	report, err := a.Analyze(context.Background(), []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, "ok", report.Summary)
	assert.Equal(t, []string{"a", "b"}, report.Insights)
}

func TestAnalyzeFallsBackToRawText(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "no json at all", response: "The agent did fine overall."},
		{name: "json without report fields", response: `{"something": "else"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &testutil.MockLLMClient{DefaultResponse: tt.response}
			a := NewAnalyzer(client, Config{})

			report, err := a.Analyze(context.Background(), []byte(`[]`))
			require.NoError(t, err)
			assert.Equal(t, tt.response, report.Summary)
		})
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	client := &testutil.MockLLMClient{
		Script: func(llm.ChatRequest) (string, error) {
			return "", errors.New("rate limited")
		},
	}

	a := NewAnalyzer(client, Config{})
	_, err := a.Analyze(context.Background(), []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

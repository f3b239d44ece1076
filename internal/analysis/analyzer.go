// Package analysis turns accumulated test results into an LLM-written
// report.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
)

// Report is the structured analysis of a batch of test results.
type Report struct {
	CategorizedResults map[string]any `json:"categorizedResults"`
	Insights           []string       `json:"insights"`
	Summary            string         `json:"summary"`
	Improvements       []string       `json:"improvements"`
}

// Config holds analysis configuration.
type Config struct {
	Model string
}

// Analyzer evaluates test results using an LLM.
type Analyzer struct {
	client llm.Client
	config Config
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client llm.Client, config Config) *Analyzer {
	return &Analyzer{client: client, config: config}
}

// Analyze sends the raw results to the model and parses the returned report.
// Malformed model JSON degrades to a report carrying the raw text as the
// summary; only transport and provider errors fail the call.
func (a *Analyzer) Analyze(ctx context.Context, results json.RawMessage) (*Report, error) {
	text, err := a.evaluate(ctx, string(results))
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return parseReport(text), nil
}

// evaluate tries streaming first, falling back to a plain completion.
func (a *Analyzer) evaluate(ctx context.Context, content string) (string, error) {
	req := llm.ChatRequest{
		Model:         a.config.Model,
		SystemMessage: reportSystemPrompt,
		UserMessage:   content,
	}

	stream, err := a.client.ChatCompletionStream(ctx, req)
	if err == nil {
		result, streamErr := llm.CollectStream(stream)
		if streamErr == nil {
			return result, nil
		}
		slog.Warn("streaming analysis failed, falling back to non-streaming", "error", streamErr)
	} else {
		slog.Debug("streaming not available, using non-streaming", "error", err)
	}

	resp, err := a.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// parseReport recovers the report object from free-form model output.
func parseReport(text string) *Report {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return &Report{Summary: strings.TrimSpace(text)}
	}

	repaired, err := jsonrepair.JSONRepair(text[start:])
	if err != nil {
		return &Report{Summary: strings.TrimSpace(text)}
	}

	var report Report
	if err := json.Unmarshal([]byte(repaired), &report); err != nil {
		return &Report{Summary: strings.TrimSpace(text)}
	}
	if report.Summary == "" && report.CategorizedResults == nil &&
		len(report.Insights) == 0 && len(report.Improvements) == 0 {
		return &Report{Summary: strings.TrimSpace(text)}
	}
	return &report
}

// reportSystemPrompt asks for the report in the envelope shape parseReport
// expects.
const reportSystemPrompt = `You are a QA analyst reviewing the results of automated tests run against a conversational AI agent. The user submits the raw test results as JSON.

Categorize the results, extract insights about failure patterns, summarize overall agent quality, and suggest concrete improvements.

Respond with ONLY a JSON object in this exact shape:

{"categorizedResults": {"<category>": <results or counts>}, "insights": ["<observation>"], "summary": "<overall assessment>", "improvements": ["<suggestion>"]}`

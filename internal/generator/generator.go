// Package generator produces test cases for an agent from an input example.
package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/extract"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
)

// TestCase is one generated scenario with its expected behavior.
type TestCase struct {
	ID             string `json:"id"`
	Scenario       string `json:"scenario"`
	ExpectedOutput string `json:"expectedOutput"`
}

// Output is the result of a generation call.
type Output struct {
	TestCases []TestCase    `json:"testCases"`
	Stats     extract.Stats `json:"stats"`
}

// Generator asks an LLM for evaluation scenarios and normalizes its output.
type Generator struct {
	client llm.Client
	model  string
}

// New creates a Generator. The model may be empty, deferring to the
// client's default.
func New(client llm.Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate asks the model for test scenarios based on an input example and
// optional agent description, recovers the JSON envelope from the raw
// response, and filters out malformed entries. Zero valid evaluations is a
// hard failure: an empty test suite is never returned silently.
func (g *Generator) Generate(ctx context.Context, inputExample, agentDescription string) (*Output, error) {
	resp, err := g.client.ChatCompletion(ctx, llm.ChatRequest{
		Model:         g.model,
		SystemMessage: generationSystemPrompt,
		UserMessage:   generationPrompt(inputExample, agentDescription),
	})
	if err != nil {
		return nil, fmt.Errorf("generation call failed: %w", err)
	}

	env := extract.Extract(resp.Content)
	evaluations, stats, err := extract.Filter(env)
	if err != nil {
		return nil, err
	}

	slog.Info("test cases generated",
		"total", stats.Total,
		"valid", stats.Valid,
		"filtered", stats.Filtered,
	)

	testCases := make([]TestCase, 0, len(evaluations))
	for _, e := range evaluations {
		testCases = append(testCases, TestCase{
			ID:             uuid.NewString(),
			Scenario:       e.Scenario,
			ExpectedOutput: e.ExpectedOutput,
		})
	}

	return &Output{TestCases: testCases, Stats: stats}, nil
}

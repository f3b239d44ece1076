package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/server"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/testutil"
)

func toolRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	return result.Content[0].(mcp.TextContent).Text
}

func TestHandleListSuites(t *testing.T) {
	sc := &server.ServerContext{}

	result, err := handleListSuites(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	text := textContent(t, result)

	// Should return at least the embedded restaurant-booking suite.
	assert.Contains(t, text, "Restaurant Booking")

	var suites []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &suites))
	require.GreaterOrEqual(t, len(suites), 1)

	s := suites[0]
	assert.Contains(t, s, "name")
	assert.Contains(t, s, "description")
	assert.Contains(t, s, "version")
	assert.Contains(t, s, "scenario_count")
}

func TestHandleGenerateTests(t *testing.T) {
	sc := &server.ServerContext{
		LLMClient: &testutil.MockLLMClient{
			DefaultResponse: `{"evaluations": [{"scenario": "greet the agent", "expectedOutput": "a greeting"}]}`,
		},
		Model: "gpt-4o-mini",
	}

	result, err := handleGenerateTests(context.Background(), toolRequest(map[string]any{
		"input_example": "hello there",
	}), sc)
	require.NoError(t, err)
	text := textContent(t, result)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Len(t, out["testCases"], 1)
}

func TestHandleGenerateTestsMissingRequired(t *testing.T) {
	result, err := handleGenerateTests(context.Background(), toolRequest(map[string]any{}), &server.ServerContext{})
	require.NoError(t, err)
	assert.Contains(t, textContent(t, result), "input_example is required")
}

func TestHandleRunTestMissingRequired(t *testing.T) {
	result, err := handleRunTest(context.Background(), toolRequest(map[string]any{
		"scenario": "greet",
	}), &server.ServerContext{})
	require.NoError(t, err)
	assert.Contains(t, textContent(t, result), "expected_output is required")
}

func TestHandleRunSuiteMissingRequired(t *testing.T) {
	result, err := handleRunSuite(context.Background(), toolRequest(map[string]any{}), &server.ServerContext{})
	require.NoError(t, err)
	assert.Contains(t, textContent(t, result), "suite is required")
}

func TestHandleRunSuiteInvalidSuite(t *testing.T) {
	result, err := handleRunSuite(context.Background(), toolRequest(map[string]any{
		"suite": "nonexistent-suite",
	}), &server.ServerContext{})
	require.NoError(t, err)
	assert.Contains(t, textContent(t, result), "failed to load suite")
}

func TestHandleAnalyzeResultsRequiresInput(t *testing.T) {
	result, err := handleAnalyzeResults(context.Background(), toolRequest(map[string]any{}), &server.ServerContext{})
	require.NoError(t, err)
	assert.Contains(t, textContent(t, result), "either run_id or results is required")
}

func TestHandleAnalyzeResultsRejectsBothInputs(t *testing.T) {
	result, err := handleAnalyzeResults(context.Background(), toolRequest(map[string]any{
		"run_id":  "run_1",
		"results": "[]",
	}), &server.ServerContext{})
	require.NoError(t, err)
	assert.Contains(t, textContent(t, result), "mutually exclusive")
}

func TestHandleAnalyzeResultsInlineJSON(t *testing.T) {
	sc := &server.ServerContext{
		LLMClient: &testutil.MockLLMClient{
			DefaultResponse: `{"summary": "one scenario, one pass", "insights": ["agent responds quickly"]}`,
		},
		Model: "gpt-4o-mini",
	}

	result, err := handleAnalyzeResults(context.Background(), toolRequest(map[string]any{
		"results": `[{"passedTest": true}]`,
	}), sc)
	require.NoError(t, err)
	text := textContent(t, result)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &report))
	assert.Equal(t, "one scenario, one pass", report["summary"])
}

func TestHandleGetResultsEmptyOutputDir(t *testing.T) {
	sc := &server.ServerContext{OutputDir: filepath.Join(t.TempDir(), "missing")}

	result, err := handleGetResults(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	assert.Equal(t, "[]", textContent(t, result))
}

func TestHandleGetResultsSpecificRun(t *testing.T) {
	outputDir := t.TempDir()
	runDir := filepath.Join(outputDir, "suite_20260101-000000")
	require.NoError(t, os.MkdirAll(runDir, 0o755))

	manifest := `{"run_id": "suite_20260101-000000", "suite": "Demo", "scenarios": 1, "passed": 1, "failed": 0}`
	results := `[{"conversation": {}, "validation": {"passedTest": true}}]`
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "resultset.json"), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "results.json"), []byte(results), 0o644))

	sc := &server.ServerContext{OutputDir: outputDir}

	result, err := handleGetResults(context.Background(), toolRequest(map[string]any{
		"run_id": "suite_20260101-000000",
	}), sc)
	require.NoError(t, err)
	text := textContent(t, result)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, "Demo", got["suite"])
	assert.Contains(t, got, "results")
}

func TestHandleGetResultsRejectsTraversal(t *testing.T) {
	sc := &server.ServerContext{OutputDir: t.TempDir()}

	result, err := handleGetResults(context.Background(), toolRequest(map[string]any{
		"run_id": "..",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, textContent(t, result), "invalid run_id")
}

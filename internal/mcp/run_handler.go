package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/agent"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/scenario"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/server"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
)

func handleRunTest(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	testScenario, ok := args["scenario"].(string)
	if !ok || testScenario == "" {
		return mcp.NewToolResultError("scenario is required"), nil
	}
	expectedOutput, ok := args["expected_output"].(string)
	if !ok || expectedOutput == "" {
		return mcp.NewToolResultError("expected_output is required"), nil
	}
	endpoint, ok := args["endpoint"].(string)
	if !ok || endpoint == "" {
		return mcp.NewToolResultError("endpoint is required"), nil
	}

	model, _ := args["model"].(string)
	if model == "" {
		model = sc.Model
	}

	cfg := target.AgentConfig{
		ModelID:     model,
		EndpointURL: endpoint,
		API: target.APIConfig{
			InputFormat: map[string]any{"message": "{{message}}"},
		},
	}

	a := agent.New(sc.LLMClient, nil, cfg)
	result, err := a.RunTest(ctx, testScenario, expectedOutput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("test run failed: %v", err)), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleRunSuite(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	suiteName, ok := args["suite"].(string)
	if !ok || suiteName == "" {
		return mcp.NewToolResultError("suite is required"), nil
	}

	suite, err := scenario.Load(suiteName, sc.SuitesDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load suite: %v", err)), nil
	}

	if endpoint, ok := args["endpoint"].(string); ok && endpoint != "" {
		suite.Agent.EndpointURL = endpoint
	}

	r := scenario.NewRunner(sc.LLMClient, nil, sc.OutputDir)
	run, err := r.Run(ctx, suite)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("suite run failed: %v", err)), nil
	}

	summary := map[string]any{
		"run_id":       run.ID,
		"suite":        run.Suite,
		"duration":     run.Duration.String(),
		"passed":       run.Passed,
		"failed":       run.Failed,
		"results_file": run.ResultsFile,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

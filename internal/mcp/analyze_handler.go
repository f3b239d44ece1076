package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/analysis"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/server"
)

func handleAnalyzeResults(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	runID, _ := args["run_id"].(string)
	resultsJSON, _ := args["results"].(string)

	var results json.RawMessage
	switch {
	case runID != "" && resultsJSON != "":
		return mcp.NewToolResultError("run_id and results are mutually exclusive"), nil
	case runID != "":
		runPath, err := resolveRunPath(sc.OutputDir, runID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid run_id: %v", err)), nil
		}
		data, err := os.ReadFile(filepath.Join(runPath, "results.json"))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read results for run %q: %v", runID, err)), nil
		}
		results = data
	case resultsJSON != "":
		if !json.Valid([]byte(resultsJSON)) {
			return mcp.NewToolResultError("results must be valid JSON"), nil
		}
		results = json.RawMessage(resultsJSON)
	default:
		return mcp.NewToolResultError("either run_id or results is required"), nil
	}

	a := analysis.NewAnalyzer(sc.LLMClient, analysis.Config{Model: sc.Model})
	report, err := a.Analyze(ctx, results)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

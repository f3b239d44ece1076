package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/server"
)

func handleGetResults(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	runID, _ := args["run_id"].(string)

	if runID != "" {
		return getSpecificRun(sc.OutputDir, runID)
	}
	return listRuns(sc.OutputDir)
}

func listRuns(outputDir string) (*mcp.CallToolResult, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return mcp.NewToolResultText("[]"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read results directory: %v", err)), nil
	}

	var runs []map[string]any
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		manifestPath := filepath.Join(outputDir, e.Name(), "resultset.json")
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			continue
		}

		var manifest map[string]any
		if err := json.Unmarshal(data, &manifest); err != nil {
			continue
		}
		runs = append(runs, manifest)
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal runs: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func getSpecificRun(outputDir, runID string) (*mcp.CallToolResult, error) {
	runPath, err := resolveRunPath(outputDir, runID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid run_id: %v", err)), nil
	}

	data, err := os.ReadFile(filepath.Join(runPath, "resultset.json"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run %q not found: %v", runID, err)), nil
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse run manifest: %v", err)), nil
	}

	// Include the per-scenario results alongside the manifest.
	if resultsData, err := os.ReadFile(filepath.Join(runPath, "results.json")); err == nil {
		var results any
		if json.Unmarshal(resultsData, &results) == nil {
			manifest["results"] = results
		}
	}

	result, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/scenario"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/server"
)

func handleListSuites(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	names, err := scenario.List(sc.SuitesDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list suites: %v", err)), nil
	}

	type suiteInfo struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		Version       string `json:"version"`
		Endpoint      string `json:"endpoint"`
		ScenarioCount int    `json:"scenario_count"`
	}

	var suites []suiteInfo
	for _, name := range names {
		suite, err := scenario.Load(name, sc.SuitesDir)
		if err != nil {
			continue
		}
		suites = append(suites, suiteInfo{
			Name:          suite.Name,
			Description:   suite.Description,
			Version:       suite.Version,
			Endpoint:      suite.Agent.EndpointURL,
			ScenarioCount: len(suite.Scenarios),
		})
	}

	data, err := json.MarshalIndent(suites, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal suites: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

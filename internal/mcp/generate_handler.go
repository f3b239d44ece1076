package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/generator"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/server"
)

func handleGenerateTests(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	inputExample, ok := args["input_example"].(string)
	if !ok || inputExample == "" {
		return mcp.NewToolResultError("input_example is required"), nil
	}
	agentDescription, _ := args["agent_description"].(string)

	g := generator.New(sc.LLMClient, sc.Model)
	out, err := g.Generate(ctx, inputExample, agentDescription)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to generate test cases: %v", err)), nil
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal test cases: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

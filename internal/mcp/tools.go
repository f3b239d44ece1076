package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/server"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	generateTool := mcp.NewTool("generate_tests",
		mcp.WithDescription("Generate test scenarios for a conversational agent from an example input"),
		mcp.WithString("input_example",
			mcp.Required(),
			mcp.Description("An example message a user would send to the agent"),
		),
		mcp.WithString("agent_description",
			mcp.Description("Short description of what the agent does"),
		),
	)
	s.AddTool(generateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGenerateTests(ctx, request, sc)
	})

	runTestTool := mcp.NewTool("run_test",
		mcp.WithDescription("Run a single multi-turn test scenario against an agent endpoint"),
		mcp.WithString("scenario",
			mcp.Required(),
			mcp.Description("The scenario to exercise (e.g. 'book a table for two tonight')"),
		),
		mcp.WithString("expected_output",
			mcp.Required(),
			mcp.Description("What a correct agent response looks like"),
		),
		mcp.WithString("endpoint",
			mcp.Required(),
			mcp.Description("Agent HTTP endpoint URL"),
		),
		mcp.WithString("model",
			mcp.Description("Model to drive the conversation (default: server config)"),
		),
	)
	s.AddTool(runTestTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRunTest(ctx, request, sc)
	})

	runSuiteTool := mcp.NewTool("run_suite",
		mcp.WithDescription("Execute a scenario suite against its configured agent endpoint"),
		mcp.WithString("suite",
			mcp.Required(),
			mcp.Description("Name of the scenario suite to run (e.g. 'restaurant-booking')"),
		),
		mcp.WithString("endpoint",
			mcp.Description("Agent endpoint URL (overrides suite config)"),
		),
	)
	s.AddTool(runSuiteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRunSuite(ctx, request, sc)
	})

	analyzeTool := mcp.NewTool("analyze_results",
		mcp.WithDescription("Analyze test results and produce a report with insights and suggested improvements"),
		mcp.WithString("run_id",
			mcp.Description("Run ID whose results to analyze (mutually exclusive with results)"),
		),
		mcp.WithString("results",
			mcp.Description("Raw test results as a JSON string (mutually exclusive with run_id)"),
		),
	)
	s.AddTool(analyzeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAnalyzeResults(ctx, request, sc)
	})

	listTool := mcp.NewTool("list_suites",
		mcp.WithDescription("List available scenario suites with metadata"),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListSuites(ctx, request, sc)
	})

	getResultsTool := mcp.NewTool("get_results",
		mcp.WithDescription("Retrieve results for past suite runs"),
		mcp.WithString("run_id",
			mcp.Description("Specific run ID to retrieve (optional, lists all if omitted)"),
		),
	)
	s.AddTool(getResultsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetResults(ctx, request, sc)
	})

	return nil
}

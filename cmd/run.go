package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/scenario"
)

func newRunCmd() *cobra.Command {
	var (
		endpoint  string
		model     string
		apiKey    string
		outputDir string
		suitesDir string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run <suite>",
		Short: "Run a scenario suite against an agent endpoint",
		Long: `Execute a scenario suite by driving a multi-turn conversation against the
agent's HTTP endpoint for each scenario and validating the final responses.

Results are written to the output directory as JSON with a metadata manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			suiteName := args[0]

			suite, err := scenario.Load(suiteName, suitesDir)
			if err != nil {
				return fmt.Errorf("failed to load suite: %w", err)
			}

			if endpoint != "" {
				suite.Agent.EndpointURL = endpoint
			}
			if model != "" {
				suite.Agent.ModelID = model
			}

			client := newLLMClientFromFlags("", apiKey, suite.Agent.ModelID)

			r := scenario.NewRunner(client, nil, outputDir)
			r.SetProgressFunc(func(id string, idx, total int) {
				fmt.Printf("\r  Running scenario %d/%d (%s)...", idx, total, id)
			})

			fmt.Printf("Suite: %s\n", suite.Name)
			fmt.Printf("Description: %s\n", suite.Description)
			fmt.Printf("Endpoint: %s\n", suite.Agent.EndpointURL)
			fmt.Printf("Scenarios: %d\n", len(suite.Scenarios))
			fmt.Println()

			run, err := r.Run(ctx, suite)
			if err != nil {
				return err
			}

			fmt.Printf("\n\nSuite completed.\n")
			fmt.Printf("Run ID: %s\n", run.ID)
			fmt.Printf("Duration: %s\n", run.Duration)
			fmt.Printf("Passed: %d\n", run.Passed)
			fmt.Printf("Failed: %d\n", run.Failed)
			fmt.Printf("Results: %s\n", run.ResultsFile)

			slog.Info("suite run complete", "run_id", run.ID, "passed", run.Passed, "failed", run.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Agent endpoint URL (overrides suite config)")
	cmd.Flags().StringVar(&model, "model", "", "Model to drive the conversation (overrides suite config)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Model API key (or set OPENAI_API_KEY)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "results", "Directory for suite run results")
	cmd.Flags().StringVar(&suitesDir, "suites-dir", "", "External scenario suites directory")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall timeout for the suite run (e.g. 30m, 1h). 0 means no timeout")

	return cmd
}

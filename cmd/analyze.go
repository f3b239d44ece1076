package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		model    string
		endpoint string
		apiKey   string
	)

	cmd := &cobra.Command{
		Use:   "analyze <results-file>",
		Short: "Analyze a results file and produce a report",
		Long: `Send a suite run's results to a model that categorizes them, extracts
insights, and suggests improvements. The report is printed as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resultsFile := args[0]

			results, err := os.ReadFile(resultsFile)
			if err != nil {
				return fmt.Errorf("failed to read results file: %w", err)
			}
			if !json.Valid(results) {
				return fmt.Errorf("results file %s is not valid JSON", resultsFile)
			}

			client := newLLMClientFromFlags(endpoint, apiKey, model)

			a := analysis.NewAnalyzer(client, analysis.Config{Model: model})

			fmt.Fprintf(cmd.ErrOrStderr(), "Analyzing: %s\n", resultsFile)
			fmt.Fprintf(cmd.ErrOrStderr(), "Model: %s\n\n", model)

			report, err := a.Analyze(cmd.Context(), results)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "gpt-4o-mini", "Model to use for analysis")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Model API endpoint URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Model API key (or set OPENAI_API_KEY)")

	return cmd
}

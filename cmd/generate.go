package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/generator"
)

func newGenerateCmd() *cobra.Command {
	var (
		description string
		model       string
		apiKey      string
	)

	cmd := &cobra.Command{
		Use:   "generate <input-example>",
		Short: "Generate test scenarios from an example input",
		Long: `Generate test scenarios for a conversational agent from a single example of
what a user would send it. The generated cases are printed as JSON and can be
saved into a suite's scenarios.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newLLMClientFromFlags("", apiKey, model)

			g := generator.New(client, model)
			out, err := g.Generate(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal test cases: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			fmt.Fprintf(cmd.ErrOrStderr(), "\nGenerated %d test cases (%d candidates filtered out).\n",
				out.Stats.Valid, out.Stats.Filtered)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Short description of what the agent does")
	cmd.Flags().StringVar(&model, "model", "gpt-4o-mini", "Model to use for generation")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Model API key (or set OPENAI_API_KEY)")

	return cmd
}

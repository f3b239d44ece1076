package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/scenario"
)

func newListCmd() *cobra.Command {
	var suitesDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available scenario suites",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := scenario.List(suitesDir)
			if err != nil {
				return fmt.Errorf("failed to list suites: %w", err)
			}

			if len(names) == 0 {
				fmt.Println("No scenario suites found.")
				return nil
			}

			fmt.Printf("Available scenario suites:\n\n")
			for _, name := range names {
				suite, err := scenario.Load(name, suitesDir)
				if err != nil {
					fmt.Printf("  - %s (error loading: %v)\n", name, err)
					continue
				}
				fmt.Printf("  - %s\n", suite.Name)
				fmt.Printf("    Description: %s\n", suite.Description)
				fmt.Printf("    Version: %s\n", suite.Version)
				fmt.Printf("    Endpoint: %s\n", suite.Agent.EndpointURL)
				fmt.Printf("    Scenarios: %d\n\n", len(suite.Scenarios))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&suitesDir, "suites-dir", "", "External scenario suites directory")

	return cmd
}

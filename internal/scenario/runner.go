package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/agent"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
)

// ProgressFunc is called to report progress during suite execution.
type ProgressFunc func(scenarioID string, index, total int)

// Runner executes scenario suites and writes run artifacts.
type Runner struct {
	client    llm.Client
	handler   *target.Handler
	outputDir string
	progress  ProgressFunc
}

// NewRunner creates a suite runner. A nil handler gets the default timeout.
func NewRunner(client llm.Client, handler *target.Handler, outputDir string) *Runner {
	if handler == nil {
		handler = target.NewHandler()
	}
	return &Runner{
		client:    client,
		handler:   handler,
		outputDir: outputDir,
	}
}

// SetProgressFunc sets the progress callback.
func (r *Runner) SetProgressFunc(fn ProgressFunc) {
	r.progress = fn
}

// Run executes every scenario in the suite sequentially and writes results.
// Each scenario gets a fresh agent so conversation memory never leaks
// between scenarios. A failing scenario is recorded and the run continues.
func (r *Runner) Run(ctx context.Context, suite *Suite) (*SuiteRun, error) {
	if len(suite.Scenarios) == 0 {
		return nil, fmt.Errorf("suite %q has no scenarios", suite.Name)
	}

	timestamp := time.Now()
	sanitizedName := strings.ReplaceAll(suite.Name, " ", "_")
	runID := fmt.Sprintf("%s_%s", sanitizedName, timestamp.Format("20060102-150405"))

	outputPath := filepath.Join(r.outputDir, runID)
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	run := &SuiteRun{
		ID:        runID,
		Suite:     suite.Name,
		Timestamp: timestamp,
		Results:   make([]Result, 0, len(suite.Scenarios)),
	}

	for i, sc := range suite.Scenarios {
		// Check for context cancellation between scenarios.
		if err := ctx.Err(); err != nil {
			slog.Warn("suite run cancelled", "suite", suite.Name, "completed", i, "total", len(suite.Scenarios))
			break
		}

		if r.progress != nil {
			r.progress(sc.ID, i+1, len(suite.Scenarios))
		}

		a := agent.New(r.client, r.handler, suite.Agent)

		start := time.Now()
		outcome, err := a.RunTest(ctx, sc.Scenario, sc.ExpectedOutput)
		result := Result{
			Scenario: sc,
			Duration: time.Since(start),
		}
		if err != nil {
			slog.Error("scenario failed", "scenario_id", sc.ID, "error", err)
			result.Error = err.Error()
			run.Failed++
		} else {
			result.Outcome = outcome
			if outcome.Validation.PassedTest {
				run.Passed++
			} else {
				run.Failed++
			}
		}
		run.Results = append(run.Results, result)
	}

	run.Duration = time.Since(timestamp)

	resultsFile := filepath.Join(outputPath, "results.json")
	data, err := json.MarshalIndent(run.Results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(resultsFile, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}
	run.ResultsFile = resultsFile

	if err := writeRunManifest(outputPath, run); err != nil {
		return nil, fmt.Errorf("failed to write run manifest: %w", err)
	}

	slog.Info("suite run complete",
		"suite", suite.Name,
		"scenarios", len(run.Results),
		"passed", run.Passed,
		"failed", run.Failed,
		"duration", run.Duration,
	)

	return run, nil
}

func writeRunManifest(outputPath string, run *SuiteRun) error {
	manifest := map[string]any{
		"id":            run.ID,
		"suite":         run.Suite,
		"timestamp":     run.Timestamp,
		"full_duration": run.Duration.Seconds(),
		"scenarios":     len(run.Results),
		"passed":        run.Passed,
		"failed":        run.Failed,
		"results_file":  run.ResultsFile,
	}

	data, err := json.MarshalIndent(manifest, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outputPath, "resultset.json"), data, 0o644)
}

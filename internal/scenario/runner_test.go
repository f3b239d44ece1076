package scenario

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/testutil"
)

func runnerTestClient() *testutil.MockLLMClient {
	return &testutil.MockLLMClient{
		Script: func(req llm.ChatRequest) (string, error) {
			if strings.Contains(req.SystemMessage, "opening message") {
				return "TEST_MESSAGE: hello agent\nCONVERSATION_PLAN: []\nANALYSIS: probe", nil
			}
			return "Verdict: behaved as expected.", nil
		},
	}
}

func runnerTestSuite(endpoint string) *Suite {
	return &Suite{
		Name: "runner test",
		Agent: target.AgentConfig{
			ModelID:     "m",
			EndpointURL: endpoint,
			API: target.APIConfig{
				InputFormat:  map[string]any{"message": "{{message}}"},
				OutputFormat: map[string]any{"response": "string"},
			},
		},
		Scenarios: []Scenario{
			{ID: "1", Scenario: "greet", ExpectedOutput: "a greeting"},
			{ID: "2", Scenario: "ask hours", ExpectedOutput: "opening hours"},
		},
	}
}

func TestRunnerExecutesSuite(t *testing.T) {
	tmpDir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "hi there"}`))
	}))
	defer srv.Close()

	r := NewRunner(runnerTestClient(), nil, tmpDir)
	run, err := r.Run(context.Background(), runnerTestSuite(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, "runner test", run.Suite)
	require.Len(t, run.Results, 2)
	assert.Equal(t, 2, run.Passed)
	assert.Equal(t, 0, run.Failed)

	for _, res := range run.Results {
		require.NotNil(t, res.Outcome)
		assert.True(t, res.Outcome.Validation.PassedTest)
		assert.Empty(t, res.Error)
	}

	// Artifacts on disk.
	assert.FileExists(t, run.ResultsFile)
	manifestFile := filepath.Join(tmpDir, run.ID, "resultset.json")
	assert.FileExists(t, manifestFile)

	data, err := os.ReadFile(manifestFile)
	require.NoError(t, err)
	var manifest map[string]any
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, float64(2), manifest["scenarios"])
	assert.Equal(t, float64(2), manifest["passed"])
}

func TestRunnerRecordsScenarioFailures(t *testing.T) {
	tmpDir := t.TempDir()

	// Target is down: every scenario errors but the run completes.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	r := NewRunner(runnerTestClient(), nil, tmpDir)
	run, err := r.Run(context.Background(), runnerTestSuite(url))
	require.NoError(t, err)

	assert.Equal(t, 0, run.Passed)
	assert.Equal(t, 2, run.Failed)
	for _, res := range run.Results {
		assert.Nil(t, res.Outcome)
		assert.NotEmpty(t, res.Error)
	}
}

func TestRunnerProgressCallback(t *testing.T) {
	tmpDir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "ok"}`))
	}))
	defer srv.Close()

	r := NewRunner(runnerTestClient(), nil, tmpDir)

	var progress []int
	r.SetProgressFunc(func(id string, idx, total int) {
		progress = append(progress, idx)
		assert.Equal(t, 2, total)
	})

	_, err := r.Run(context.Background(), runnerTestSuite(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, progress)
}

func TestRunnerEmptySuite(t *testing.T) {
	r := NewRunner(runnerTestClient(), nil, t.TempDir())
	_, err := r.Run(context.Background(), &Suite{Name: "empty"})
	assert.Error(t, err)
}

func TestRunnerContextCancellation(t *testing.T) {
	tmpDir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "ok"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(runnerTestClient(), nil, tmpDir)
	run, err := r.Run(ctx, runnerTestSuite(srv.URL))
	require.NoError(t, err)

	// Cancelled before the first scenario: nothing executed.
	assert.Empty(t, run.Results)
}

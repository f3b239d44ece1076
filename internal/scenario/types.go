package scenario

import (
	"time"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/agent"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
)

// Suite is a loaded scenario suite: the target agent's configuration plus
// the scenarios to probe it with.
type Suite struct {
	Name          string             `yaml:"name"`
	Description   string             `yaml:"description"`
	Version       string             `yaml:"version"`
	ScenariosFile string             `yaml:"scenarios_file"`
	Agent         target.AgentConfig `yaml:"agent"`
	Scenarios     []Scenario         `yaml:"-"` // loaded separately
}

// Scenario is a single test situation with its expected behavior.
type Scenario struct {
	ID             string `yaml:"id"`
	Scenario       string `yaml:"scenario"`
	ExpectedOutput string `yaml:"expectedOutput"`
}

// Result pairs a scenario with its test outcome. Error holds the failure
// message when the run did not produce a TestResult.
type Result struct {
	Scenario Scenario          `json:"scenario"`
	Outcome  *agent.TestResult `json:"outcome,omitempty"`
	Error    string            `json:"error,omitempty"`
	Duration time.Duration     `json:"duration"`
}

// SuiteRun is the record of one complete suite execution.
type SuiteRun struct {
	ID          string        `json:"id"`
	Suite       string        `json:"suite"`
	Timestamp   time.Time     `json:"timestamp"`
	Duration    time.Duration `json:"duration"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	ResultsFile string        `json:"results_file"`
	Results     []Result      `json:"-"`
}

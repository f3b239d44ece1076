package agent

import "encoding/json"

// Roles for transcript entries.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageMetrics holds per-message timing and scoring.
type MessageMetrics struct {
	// ResponseTime is the elapsed wall-clock time of the turn, in
	// milliseconds. Measured, never estimated.
	ResponseTime int64 `json:"responseTime"`
	// ValidationScore is a placeholder until per-turn scoring exists;
	// only the final response is validated.
	ValidationScore float64 `json:"validationScore"`
}

// TestMessage is one transcript entry. Every message belongs to exactly one
// chat; order within a chat reflects actual send order.
type TestMessage struct {
	ID      string         `json:"id"`
	ChatID  string         `json:"chatId"`
	Role    string         `json:"role"`
	Content string         `json:"content"`
	Metrics MessageMetrics `json:"metrics"`
}

// ConversationRecord captures everything that was exchanged during a test.
type ConversationRecord struct {
	HumanMessage string          `json:"humanMessage"`
	RawInput     map[string]any  `json:"rawInput"`
	RawOutput    json.RawMessage `json:"rawOutput"`
	ChatResponse string          `json:"chatResponse"`
	AllMessages  []TestMessage   `json:"allMessages"`
}

// ValidationMetrics holds aggregate timing for a test run.
type ValidationMetrics struct {
	// ResponseTime is the sum of per-turn elapsed times, in milliseconds.
	ResponseTime int64 `json:"responseTime"`
}

// ValidationRecord is the verdict for a test run.
// PassedTest is always FormatValid AND ConditionMet.
type ValidationRecord struct {
	PassedTest   bool              `json:"passedTest"`
	FormatValid  bool              `json:"formatValid"`
	ConditionMet bool              `json:"conditionMet"`
	Explanation  string            `json:"explanation"`
	Metrics      ValidationMetrics `json:"metrics"`
}

// TestResult is the structured outcome of one RunTest call. Immutable after
// return.
type TestResult struct {
	Conversation ConversationRecord `json:"conversation"`
	Validation   ValidationRecord   `json:"validation"`
}

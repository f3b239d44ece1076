package agent

import (
	"fmt"
	"strings"
)

// planningSystemPrompt asks the model to open a test conversation. The
// labeled sections are what conversation.ParsePlan expects; the parser
// tolerates the model dropping optional ones.
const planningSystemPrompt = `You are a QA tester probing a conversational AI agent. Given a test scenario and the expected agent behavior, write the opening message a real human user would send, and optionally plan follow-up turns.

Respond in exactly this format:

TEST_MESSAGE: <the literal opening message to send>
CONVERSATION_PLAN: <a JSON array of short follow-up turn descriptions, or [] if one message suffices>
ANALYSIS: <brief reasoning about what this conversation will reveal>`

// followUpSystemPrompt asks the model for the next human message mid-test.
const followUpSystemPrompt = `You are a QA tester in the middle of a conversation with an AI agent under test. Given the agent's last response and the planned intent for the next turn, write the next message a real human user would send.

Respond in exactly this format:

TEST_MESSAGE: <the literal next message to send>`

// analysisSystemPrompt asks the model for a final pass/fail rationale.
const analysisSystemPrompt = `You are a QA analyst. You are given the full transcript of a test conversation with an AI agent, the scenario being tested, the expected behavior, and the results of automated format and condition checks. Explain concisely whether the agent passed the test and why.`

func planningPrompt(scenario, expectedOutput string) string {
	return fmt.Sprintf("Scenario: %s\n\nExpected agent behavior: %s", scenario, expectedOutput)
}

func followUpPrompt(lastResponse, plannedTurn string) string {
	return fmt.Sprintf("The agent's last response was:\n%s\n\nPlanned intent for the next turn: %s", lastResponse, plannedTurn)
}

func analysisPrompt(scenario, expectedOutput string, messages []TestMessage, formatValid, conditionMet bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", scenario)
	fmt.Fprintf(&b, "Expected agent behavior: %s\n\n", expectedOutput)
	b.WriteString("Transcript:\n")
	for _, m := range messages {
		fmt.Fprintf(&b, "[%s] %s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&b, "\nFormat check passed: %t\n", formatValid)
	fmt.Fprintf(&b, "Condition check passed: %t\n", conditionMet)
	return b.String()
}

package generator

import (
	"fmt"
	"strings"
)

// generationSystemPrompt asks for evaluation scenarios as a bare JSON array.
// The extract package repairs the near-JSON the model actually returns.
const generationSystemPrompt = `You are a QA engineer designing tests for a conversational AI agent. Given an example user input (and optionally a description of the agent), produce diverse test scenarios covering normal use, edge cases, and misuse.

Respond with ONLY a JSON array in this exact shape:

[{"scenario": "<natural-language situation to probe>", "expectedOutput": "<the correct agent behavior>"}]`

func generationPrompt(inputExample, agentDescription string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Example input to the agent:\n%s\n", inputExample)
	if agentDescription != "" {
		fmt.Fprintf(&b, "\nAgent description:\n%s\n", agentDescription)
	}
	return b.String()
}

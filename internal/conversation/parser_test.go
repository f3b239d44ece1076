package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanAllSections(t *testing.T) {
	input := `TEST_MESSAGE: Hi, I'd like to book a table for two.
CONVERSATION_PLAN: ["Ask about vegetarian options", "Change the booking to four people"]
ANALYSIS: Opening with a common booking request to probe basic flow.`

	plan := ParsePlan(input)
	assert.Equal(t, "Hi, I'd like to book a table for two.", plan.TestMessage)
	require.Len(t, plan.Turns, 2)
	assert.Equal(t, "Ask about vegetarian options", plan.Turns[0])
	assert.Equal(t, "Change the booking to four people", plan.Turns[1])
	assert.Contains(t, plan.Analysis, "booking request")
}

func TestParsePlanSectionsOutOfOrder(t *testing.T) {
	input := `ANALYSIS: reasoning first
TEST_MESSAGE: the actual message`

	plan := ParsePlan(input)
	assert.Equal(t, "the actual message", plan.TestMessage)
	assert.Equal(t, "reasoning first", plan.Analysis)
	assert.Empty(t, plan.Turns)
}

func TestParsePlanMissingSections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no labels at all", input: "just some text"},
		{name: "empty input", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ParsePlan(tt.input)
			assert.Empty(t, plan.TestMessage)
			assert.Empty(t, plan.Turns)
			assert.Empty(t, plan.Analysis)
		})
	}
}

func TestParsePlanMultilineMessage(t *testing.T) {
	input := `TEST_MESSAGE: First line.
Second line of the same message.
CONVERSATION_PLAN: []`

	plan := ParsePlan(input)
	assert.Equal(t, "First line.\nSecond line of the same message.", plan.TestMessage)
	assert.Empty(t, plan.Turns)
}

func TestParsePlanNumberedList(t *testing.T) {
	input := `TEST_MESSAGE: hello
CONVERSATION_PLAN:
1. Ask a follow-up question
2) Express confusion
- Thank the agent`

	plan := ParsePlan(input)
	require.Len(t, plan.Turns, 3)
	assert.Equal(t, "Ask a follow-up question", plan.Turns[0])
	assert.Equal(t, "Express confusion", plan.Turns[1])
	assert.Equal(t, "Thank the agent", plan.Turns[2])
}

func TestParsePlanRepairedJSONArray(t *testing.T) {
	// Trailing comma in the plan array.
	input := `TEST_MESSAGE: hi
CONVERSATION_PLAN: ["one", "two",]`

	plan := ParsePlan(input)
	require.Len(t, plan.Turns, 2)
	assert.Equal(t, []string{"one", "two"}, plan.Turns)
}

func TestParsePlanObjectTurns(t *testing.T) {
	input := `TEST_MESSAGE: hi
CONVERSATION_PLAN: [{"message": "ask about pricing"}, {"message": "request a discount"}]`

	plan := ParsePlan(input)
	assert.Equal(t, []string{"ask about pricing", "request a discount"}, plan.Turns)
}

func TestParsePlanEmptyJSONArrayPlan(t *testing.T) {
	// The literal [] is the prompted way to plan zero follow-up turns. It
	// must parse as an empty plan, not fall through to line splitting.
	input := `TEST_MESSAGE: hi
CONVERSATION_PLAN: []
ANALYSIS: one message suffices`

	plan := ParsePlan(input)
	assert.Equal(t, "hi", plan.TestMessage)
	assert.Empty(t, plan.Turns)
	assert.Equal(t, "one message suffices", plan.Analysis)
}

func TestParsePlanJSONArrayWithoutUsableTurns(t *testing.T) {
	// Parsed as JSON but no recognized turn shape: still a zero-turn plan.
	input := `TEST_MESSAGE: hi
CONVERSATION_PLAN: [{"note": "nothing to do"}]`

	plan := ParsePlan(input)
	assert.Empty(t, plan.Turns)
}

func TestParsePlanEmptyPlanSection(t *testing.T) {
	input := `TEST_MESSAGE: hi
CONVERSATION_PLAN:
ANALYSIS: nothing planned`

	plan := ParsePlan(input)
	assert.Equal(t, "hi", plan.TestMessage)
	assert.Empty(t, plan.Turns)
	assert.Equal(t, "nothing planned", plan.Analysis)
}

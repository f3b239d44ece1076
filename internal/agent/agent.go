// Package agent drives scripted multi-turn test conversations against a
// target agent API and produces structured verdicts.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/conversation"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/validate"
)

// Agent plans a test conversation with an LLM, executes it against the
// target endpoint, validates the final response, and asks the LLM for a
// verdict. One Agent owns one conversation memory; concurrent test runs
// should each use their own instance.
type Agent struct {
	client  llm.Client
	handler *target.Handler
	config  target.AgentConfig

	memory []llm.Message
}

// New creates an Agent. The config is treated as immutable.
func New(client llm.Client, handler *target.Handler, config target.AgentConfig) *Agent {
	if handler == nil {
		handler = target.NewHandler()
	}
	return &Agent{
		client:  client,
		handler: handler,
		config:  config,
	}
}

// RunTest executes one full test: plan, initial turn, planned follow-up
// turns, validation of the final response, and an LLM-written explanation.
// Every step is strictly sequential. Any failure before the result is
// assembled fails the whole run; no partial TestResult is returned.
func (a *Agent) RunTest(ctx context.Context, scenario, expectedOutput string) (*TestResult, error) {
	result, err := a.runTest(ctx, scenario, expectedOutput)
	if err != nil {
		slog.Error("test run failed", "scenario", scenario, "error", err)
		return nil, err
	}
	return result, nil
}

func (a *Agent) runTest(ctx context.Context, scenario, expectedOutput string) (*TestResult, error) {
	// Planning.
	planResp, err := a.client.ChatCompletion(ctx, llm.ChatRequest{
		Model:         a.config.ModelID,
		SystemMessage: planningSystemPrompt,
		UserMessage:   planningPrompt(scenario, expectedOutput),
	})
	if err != nil {
		return nil, fmt.Errorf("planning call failed: %w", err)
	}

	plan := conversation.ParsePlan(planResp.Content)
	if plan.TestMessage == "" {
		return nil, fmt.Errorf("model did not produce a test message")
	}

	slog.Debug("conversation planned",
		"scenario", scenario,
		"follow_up_turns", len(plan.Turns),
	)

	chatID := uuid.NewString()
	var messages []TestMessage
	var totalElapsed int64

	// Initial turn.
	rawInput := target.FormatInput(plan.TestMessage, a.config.API.InputFormat)
	rawOutput, chatResponse, elapsed, err := a.sendTurn(ctx, plan.TestMessage, rawInput)
	if err != nil {
		return nil, fmt.Errorf("initial turn failed: %w", err)
	}
	totalElapsed += elapsed
	messages = appendTurn(messages, chatID, plan.TestMessage, chatResponse, elapsed)

	// Follow-up turns, in plan order. A timeout here fails the whole run.
	for i, plannedTurn := range plan.Turns {
		nextMessage, err := a.nextHumanMessage(ctx, messages, chatResponse, plannedTurn)
		if err != nil {
			return nil, fmt.Errorf("follow-up turn %d planning failed: %w", i+1, err)
		}

		turnInput := target.FormatInput(nextMessage, a.config.API.InputFormat)
		rawOutput, chatResponse, elapsed, err = a.sendTurn(ctx, nextMessage, turnInput)
		if err != nil {
			if target.IsTimeout(err) {
				return nil, fmt.Errorf("follow-up turn %d timed out: %w", i+1, err)
			}
			return nil, fmt.Errorf("follow-up turn %d failed: %w", i+1, err)
		}
		totalElapsed += elapsed
		messages = appendTurn(messages, chatID, nextMessage, chatResponse, elapsed)
	}

	// Validation runs against the last response only.
	formatValid := validate.ResponseFormat(rawOutput, a.config.API.OutputFormat)
	conditionMet := validate.Condition(rawOutput, a.config.API.Rules)

	// Analysis: the raw model text is the explanation, not parsed further.
	explanation, err := a.analyze(ctx, scenario, expectedOutput, messages, formatValid, conditionMet)
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	// Persist the opening exchange into agent memory.
	a.memory = append(a.memory,
		llm.Message{Role: RoleUser, Content: plan.TestMessage},
		llm.Message{Role: RoleAssistant, Content: messages[1].Content},
	)

	return &TestResult{
		Conversation: ConversationRecord{
			HumanMessage: plan.TestMessage,
			RawInput:     rawInput,
			RawOutput:    rawOutput,
			ChatResponse: chatResponse,
			AllMessages:  messages,
		},
		Validation: ValidationRecord{
			PassedTest:   formatValid && conditionMet,
			FormatValid:  formatValid,
			ConditionMet: conditionMet,
			Explanation:  explanation,
			Metrics:      ValidationMetrics{ResponseTime: totalElapsed},
		},
	}, nil
}

// sendTurn performs one call against the target endpoint and extracts the
// chat response. Elapsed time is wall clock, in milliseconds.
func (a *Agent) sendTurn(ctx context.Context, message string, rawInput map[string]any) (rawOutput []byte, chatResponse string, elapsedMs int64, err error) {
	start := time.Now()
	rawOutput, err = a.handler.CallEndpoint(ctx, a.config.EndpointURL, a.config.Headers, rawInput)
	elapsedMs = time.Since(start).Milliseconds()
	if err != nil {
		return nil, "", elapsedMs, err
	}
	chatResponse = conversation.ExtractChatResponse(rawOutput, a.config.API.Rules)
	return rawOutput, chatResponse, elapsedMs, nil
}

// nextHumanMessage asks the model for the next user message given the
// transcript so far and the planned beat.
func (a *Agent) nextHumanMessage(ctx context.Context, messages []TestMessage, lastResponse, plannedTurn string) (string, error) {
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := a.client.ChatCompletion(ctx, llm.ChatRequest{
		Model:         a.config.ModelID,
		SystemMessage: followUpSystemPrompt,
		History:       history,
		UserMessage:   followUpPrompt(lastResponse, plannedTurn),
	})
	if err != nil {
		return "", err
	}

	next := conversation.ParsePlan(resp.Content).TestMessage
	if next == "" {
		// Models sometimes skip the label and answer with the bare message.
		next = strings.TrimSpace(resp.Content)
	}
	if next == "" {
		return "", fmt.Errorf("model did not produce a follow-up message")
	}
	return next, nil
}

func (a *Agent) analyze(ctx context.Context, scenario, expectedOutput string, messages []TestMessage, formatValid, conditionMet bool) (string, error) {
	resp, err := a.client.ChatCompletion(ctx, llm.ChatRequest{
		Model:         a.config.ModelID,
		SystemMessage: analysisSystemPrompt,
		UserMessage:   analysisPrompt(scenario, expectedOutput, messages, formatValid, conditionMet),
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// appendTurn records one user/assistant exchange pair in send order.
func appendTurn(messages []TestMessage, chatID, userContent, assistantContent string, elapsedMs int64) []TestMessage {
	metrics := MessageMetrics{ResponseTime: elapsedMs}
	return append(messages,
		TestMessage{
			ID:      uuid.NewString(),
			ChatID:  chatID,
			Role:    RoleUser,
			Content: userContent,
			Metrics: metrics,
		},
		TestMessage{
			ID:      uuid.NewString(),
			ChatID:  chatID,
			Role:    RoleAssistant,
			Content: assistantContent,
			Metrics: metrics,
		},
	)
}

// History returns a copy of the accumulated conversation memory in order.
func (a *Agent) History() []llm.Message {
	out := make([]llm.Message, len(a.memory))
	copy(out, a.memory)
	return out
}

// Reset clears the conversation memory.
func (a *Agent) Reset() {
	a.memory = nil
}

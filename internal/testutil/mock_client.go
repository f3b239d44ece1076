// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"fmt"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
)

// MockLLMClient is a configurable mock for llm.Client used across test packages.
type MockLLMClient struct {
	// Script, when set, decides the response for each request. It takes
	// precedence over Responses.
	Script func(req llm.ChatRequest) (string, error)

	// Responses maps user messages to canned responses.
	Responses map[string]string

	// DefaultResponse is returned when no matching key is found in Responses.
	DefaultResponse string

	// Calls tracks the number of ChatCompletion invocations.
	Calls int

	// Requests stores every ChatRequest for inspection.
	Requests []llm.ChatRequest
}

func (m *MockLLMClient) ChatCompletion(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.Calls++
	m.Requests = append(m.Requests, req)

	if m.Script != nil {
		content, err := m.Script(req)
		if err != nil {
			return nil, err
		}
		return &llm.ChatResponse{Content: content}, nil
	}

	if resp, ok := m.Responses[req.UserMessage]; ok {
		return &llm.ChatResponse{Content: resp}, nil
	}

	if m.DefaultResponse != "" {
		return &llm.ChatResponse{Content: m.DefaultResponse}, nil
	}

	return &llm.ChatResponse{Content: "mock response"}, nil
}

func (m *MockLLMClient) ChatCompletionStream(_ context.Context, _ llm.ChatRequest) (*llm.StreamReader, error) {
	return nil, fmt.Errorf("streaming not supported in mock")
}

// LastRequest returns the most recent ChatRequest, or a zero value when no
// call has been made.
func (m *MockLLMClient) LastRequest() llm.ChatRequest {
	if len(m.Requests) == 0 {
		return llm.ChatRequest{}
	}
	return m.Requests[len(m.Requests)-1]
}

package cmd

import (
	"os"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
)

// newLLMClientFromFlags creates an LLM client from common CLI flags.
// It checks the endpoint, apiKey and model flags, falling back to the
// OPENAI_API_KEY environment variable when no explicit key is provided.
func newLLMClientFromFlags(endpoint, apiKey, model string) llm.Client {
	var opts []llm.Option
	if endpoint != "" {
		opts = append(opts, llm.WithBaseURL(endpoint))
	}
	if apiKey != "" {
		opts = append(opts, llm.WithAPIKey(apiKey))
	} else if envKey := os.Getenv("OPENAI_API_KEY"); envKey != "" {
		opts = append(opts, llm.WithAPIKey(envKey))
	}
	if model != "" {
		opts = append(opts, llm.WithModel(model))
	}
	return llm.NewOpenAIClient(opts...)
}

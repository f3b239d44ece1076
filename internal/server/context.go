package server

import (
	"fmt"
	"net/http"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/llm"
)

// Model configuration headers accepted on API requests. The analyze
// endpoint requires them; callers bring their own provider credentials.
const (
	HeaderModelID = "X-Model"
	HeaderBaseURL = "X-Model-Base-URL"
	HeaderAPIKey  = "X-Model-Api-Key"
)

// ServerContext holds shared dependencies for REST and MCP tool handlers.
type ServerContext struct {
	LLMClient llm.Client // default client for model calls
	OutputDir string     // suite run artifacts
	SuitesDir string     // external scenario suites directory (optional)
	Model     string     // default model id
}

// ModelConfig is caller-supplied provider configuration.
type ModelConfig struct {
	Model   string
	BaseURL string
	APIKey  string
}

// ModelConfigFromHeaders extracts provider configuration from request
// headers. The API key is mandatory: analysis runs on the caller's own
// provider account, never the server's.
func ModelConfigFromHeaders(h http.Header) (ModelConfig, error) {
	cfg := ModelConfig{
		Model:   h.Get(HeaderModelID),
		BaseURL: h.Get(HeaderBaseURL),
		APIKey:  h.Get(HeaderAPIKey),
	}
	if cfg.APIKey == "" {
		return ModelConfig{}, fmt.Errorf("missing model configuration: %s header is required", HeaderAPIKey)
	}
	if cfg.Model == "" {
		return ModelConfig{}, fmt.Errorf("missing model configuration: %s header is required", HeaderModelID)
	}
	return cfg, nil
}

// Client builds an LLM client for the caller-supplied configuration.
func (m ModelConfig) Client() llm.Client {
	opts := []llm.Option{
		llm.WithAPIKey(m.APIKey),
		llm.WithModel(m.Model),
	}
	if m.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(m.BaseURL))
	}
	return llm.NewOpenAIClient(opts...)
}

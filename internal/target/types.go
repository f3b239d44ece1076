// Package target talks to the agent API under test.
package target

// Rule declares a condition over a target API response. Path is a gjson
// path into the raw response body.
type Rule struct {
	Path      string `json:"path" yaml:"path"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"` // "contains", "equals", "matches", "exists"
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
}

// APIConfig describes the request/response contract of a target endpoint.
// It is per-test configuration, never hardcoded.
type APIConfig struct {
	// InputFormat is the request body template. String values may contain
	// the {{message}} placeholder, which is substituted with the outgoing
	// test message.
	InputFormat map[string]any `json:"inputFormat" yaml:"inputFormat"`

	// OutputFormat declares the fields a response is required to carry.
	OutputFormat map[string]any `json:"outputFormat" yaml:"outputFormat"`

	// Rules are checked against responses, both for condition validation
	// and for locating the conversational reply within the payload.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// AgentConfig is the immutable per-agent configuration.
type AgentConfig struct {
	ModelID     string            `json:"modelId" yaml:"modelId"`
	API         APIConfig         `json:"apiConfig" yaml:"apiConfig"`
	EndpointURL string            `json:"endpointUrl" yaml:"endpointUrl"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

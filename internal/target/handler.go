package target

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single call to the target endpoint.
const DefaultTimeout = 10 * time.Second

// messagePlaceholder is substituted in input-format templates.
const messagePlaceholder = "{{message}}"

// TimeoutError reports that a target API call exceeded its deadline.
// It is distinguishable from other transport failures via errors.As or
// IsTimeout.
type TimeoutError struct {
	URL   string
	Limit time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("target API call to %s timed out after %s", e.URL, e.Limit)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is (or wraps) a target API timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// StatusError reports a non-2xx response from the target endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	// Compress the body to a single line for log friendliness.
	body := strings.Join(strings.Fields(e.Body), " ")
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("target API returned status %d: %s", e.StatusCode, body)
}

// Handler formats requests for and performs calls against a target agent API.
type Handler struct {
	client  *http.Client
	timeout time.Duration
}

// NewHandler creates a Handler with the default timeout.
func NewHandler() *Handler {
	return NewHandlerWithTimeout(DefaultTimeout)
}

// NewHandlerWithTimeout creates a Handler with an explicit timeout bound.
func NewHandlerWithTimeout(timeout time.Duration) *Handler {
	return &Handler{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// FormatInput maps a plain test message into the request body shape the
// target endpoint expects. String values containing the {{message}}
// placeholder are substituted; when the template carries no placeholder at
// all, the message is set under a top-level "message" key. The template
// itself is never mutated.
func FormatInput(message string, inputFormat map[string]any) map[string]any {
	if len(inputFormat) == 0 {
		return map[string]any{"message": message}
	}

	substituted := false
	body := substituteValue(inputFormat, message, &substituted).(map[string]any)
	if !substituted {
		body["message"] = message
	}
	return body
}

func substituteValue(v any, message string, substituted *bool) any {
	switch val := v.(type) {
	case string:
		if strings.Contains(val, messagePlaceholder) {
			*substituted = true
			return strings.ReplaceAll(val, messagePlaceholder, message)
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = substituteValue(inner, message, substituted)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = substituteValue(inner, message, substituted)
		}
		return out
	default:
		return val
	}
}

// CallEndpoint performs a single HTTP POST against the target API and
// returns the raw response body. No retries: one attempt per turn. A call
// exceeding the timeout bound surfaces a *TimeoutError; any other transport
// failure propagates with its original cause intact.
func (h *Handler) CallEndpoint(ctx context.Context, url string, headers map[string]string, body map[string]any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if isTimeoutErr(err) {
			return nil, &TimeoutError{URL: url, Limit: h.timeout, Err: err}
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeoutErr(err) {
			return nil, &TimeoutError{URL: url, Limit: h.timeout, Err: err}
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

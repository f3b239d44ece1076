package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/testutil"
)

func newTestRouter(client *testutil.MockLLMClient) http.Handler {
	return NewRouter(&ServerContext{
		LLMClient: client,
		Model:     "gpt-4o-mini",
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newTestRouter(&testutil.MockLLMClient{}), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGenerateTestsSuccess(t *testing.T) {
	client := &testutil.MockLLMClient{
		DefaultResponse: `{"evaluations": [
			{"scenario": "book a table", "expectedOutput": "confirmation"},
			{"scenario": "cancel booking", "expectedOutput": "acknowledgment"}
		]}`,
	}
	rec := doJSON(t, newTestRouter(client), http.MethodPost, "/api/tools/generate-tests",
		`{"inputExample": "I want a table for two", "agentDescription": "booking agent"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Equal(t, int64(2), gjson.Get(body, "testCases.#").Int())
	assert.Equal(t, "book a table", gjson.Get(body, "testCases.0.scenario").String())
	assert.NotEmpty(t, gjson.Get(body, "testCases.0.id").String())
	assert.Equal(t, int64(2), gjson.Get(body, "stats.valid").Int())
}

func TestGenerateTestsBadBody(t *testing.T) {
	rec := doJSON(t, newTestRouter(&testutil.MockLLMClient{}), http.MethodPost,
		"/api/tools/generate-tests", `{"agentDescription": "no input example"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestGenerateTestsNoValidEvaluations(t *testing.T) {
	client := &testutil.MockLLMClient{DefaultResponse: `{"evaluations": [{"scenario": ""}]}`}
	rec := doJSON(t, newTestRouter(client), http.MethodPost, "/api/tools/generate-tests",
		`{"inputExample": "hello"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeResultsMissingModelHeaders(t *testing.T) {
	rec := doJSON(t, newTestRouter(&testutil.MockLLMClient{}), http.MethodPost,
		"/api/tools/analyze-results", `{"results": [{"passedTest": true}]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "model configuration")
}

func TestAnalyzeResultsBadBody(t *testing.T) {
	rec := doJSON(t, newTestRouter(&testutil.MockLLMClient{}), http.MethodPost,
		"/api/tools/analyze-results", `{}`, map[string]string{
			HeaderModelID: "gpt-4o-mini",
			HeaderAPIKey:  "sk-test",
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeResultsSuccess(t *testing.T) {
	report := `{\"summary\": \"all passed\", \"insights\": [\"fast responses\"]}`

	// Minimal OpenAI-compatible streaming endpoint.
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":\"%s\"}}]}\n\n", report)
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer provider.Close()

	rec := doJSON(t, newTestRouter(&testutil.MockLLMClient{}), http.MethodPost,
		"/api/tools/analyze-results", `{"results": [{"passedTest": true}]}`, map[string]string{
			HeaderModelID: "gpt-4o-mini",
			HeaderAPIKey:  "sk-test",
			HeaderBaseURL: provider.URL,
		})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Equal(t, "all passed", gjson.Get(body, "summary").String())
	assert.Equal(t, "fast responses", gjson.Get(body, "insights.0").String())
}

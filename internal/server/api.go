package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/analysis"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/extract"
	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/generator"
)

// GenerateTestsRequest is the body of POST /api/tools/generate-tests.
type GenerateTestsRequest struct {
	InputExample     string `json:"inputExample" binding:"required"`
	AgentDescription string `json:"agentDescription"`
}

// AnalyzeResultsRequest is the body of POST /api/tools/analyze-results.
type AnalyzeResultsRequest struct {
	Results json.RawMessage `json:"results" binding:"required"`
}

// errorResponse is the structured error body for every API failure.
// Details carries a human-readable message; stack traces never leave the
// process.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// NewRouter builds the gin engine with the API routes registered.
func NewRouter(sc *ServerContext) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := router.Group("/api/tools")
	api.POST("/generate-tests", func(c *gin.Context) { handleGenerateTests(c, sc) })
	api.POST("/analyze-results", func(c *gin.Context) { handleAnalyzeResults(c, sc) })

	return router
}

func handleGenerateTests(c *gin.Context, sc *ServerContext) {
	var req GenerateTestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	g := generator.New(sc.LLMClient, sc.Model)
	out, err := g.Generate(c.Request.Context(), req.InputExample, req.AgentDescription)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, extract.ErrNoValidEvaluations) {
			status = http.StatusUnprocessableEntity
		}
		respondError(c, status, "failed to generate test cases", err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func handleAnalyzeResults(c *gin.Context, sc *ServerContext) {
	var req AnalyzeResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	modelCfg, err := ModelConfigFromHeaders(c.Request.Header)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid model configuration", err)
		return
	}

	a := analysis.NewAnalyzer(modelCfg.Client(), analysis.Config{Model: modelCfg.Model})
	report, err := a.Analyze(c.Request.Context(), req.Results)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to analyze results", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// respondError logs the full error and returns only its message to the
// caller.
func respondError(c *gin.Context, status int, msg string, err error) {
	slog.Error(msg, "status", status, "error", err)
	c.JSON(status, errorResponse{Error: msg, Details: err.Error()})
}

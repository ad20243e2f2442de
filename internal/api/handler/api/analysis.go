// internal/api/handler/api/analysis.go
package api

import (
	"errors"
	"net/http"

	"github.com/finsig/finsig/internal/api/response"
	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/llm"
	"go.uber.org/zap"
)

// AnalysisHandler combines an evaluation with LLM commentary.
type AnalysisHandler struct {
	performance *PerformanceHandler
	analyst     *llm.Analyst
	logger      *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler. A nil analyst means no
// LLM provider is configured and requests are answered with 503.
func NewAnalysisHandler(performance *PerformanceHandler, analyst *llm.Analyst, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		performance: performance,
		analyst:     analyst,
		logger:      logger,
	}
}

// Analyze handles GET /api/v1/strategy/analysis.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.analyst == nil {
		response.Error(w, http.StatusServiceUnavailable,
			core.WrapError(core.ErrLLMUnavailable, nil))
		return
	}

	windows, err := h.performance.windowsFromQuery(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.performance.run(r, windows)
	if err != nil {
		h.performance.writeError(w, err)
		return
	}

	commentary, err := h.analyst.Analyze(r.Context(), result)
	if err != nil {
		h.logger.Warn("analysis failed", zap.Error(err))
		switch {
		case errors.Is(err, core.ErrLLMUnavailable):
			response.Error(w, http.StatusServiceUnavailable, err)
		default:
			response.Error(w, http.StatusBadGateway, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"performance": result,
		"commentary":  commentary,
	})
}

// internal/api/handler/api/performance.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/finsig/finsig/internal/api/response"
	"github.com/finsig/finsig/internal/backtest"
	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/metrics"
	"github.com/finsig/finsig/internal/storage/bar"
	"go.uber.org/zap"
)

// PerformanceHandler runs the crossover engine over the stored dataset.
type PerformanceHandler struct {
	store    bar.Store
	defaults core.WindowPair
	registry *metrics.Registry
	logger   *zap.Logger
}

// NewPerformanceHandler creates a new performance handler. The defaults are
// used when a request does not override the windows.
func NewPerformanceHandler(store bar.Store, defaults core.WindowPair, registry *metrics.Registry, logger *zap.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		store:    store,
		defaults: defaults,
		registry: registry,
		logger:   logger,
	}
}

// Evaluate handles GET /api/v1/strategy/performance.
func (h *PerformanceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	windows, err := h.windowsFromQuery(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.run(r, windows)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// run loads the dataset and evaluates it, recording metrics either way.
func (h *PerformanceHandler) run(r *http.Request, windows core.WindowPair) (*backtest.Result, error) {
	bars, err := h.store.Bars(r.Context())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := backtest.Evaluate(bars, windows)
	duration := time.Since(start).Seconds()

	if err != nil {
		h.registry.RecordEvaluation("error", duration)
		return nil, err
	}
	h.registry.RecordEvaluation("success", duration)
	for _, sig := range result.Signals {
		h.registry.RecordSignal(string(sig.Kind))
	}

	h.logger.Debug("evaluated strategy",
		zap.Int("bars", len(bars)),
		zap.Int("short_window", windows.Short),
		zap.Int("long_window", windows.Long),
		zap.Int("trades", result.TotalTrades))

	return result, nil
}

// windowsFromQuery parses short_window/long_window, falling back to the
// configured defaults. Parse failures surface as CONFIGURATION_ERROR so the
// client sees a 400 rather than silently running with defaults.
func (h *PerformanceHandler) windowsFromQuery(r *http.Request) (core.WindowPair, error) {
	windows := h.defaults
	q := r.URL.Query()

	if raw := q.Get("short_window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return core.WindowPair{}, core.WrapError(core.ErrConfiguration,
				fmt.Errorf("short_window: %w", err))
		}
		windows.Short = n
	}
	if raw := q.Get("long_window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return core.WindowPair{}, core.WrapError(core.ErrConfiguration,
				fmt.Errorf("long_window: %w", err))
		}
		windows.Long = n
	}

	return windows, nil
}

func (h *PerformanceHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrConfiguration):
		response.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, core.ErrDataIntegrity):
		response.Error(w, http.StatusUnprocessableEntity, err)
	default:
		response.Error(w, http.StatusInternalServerError, err)
	}
}

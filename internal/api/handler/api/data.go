// internal/api/handler/api/data.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/finsig/finsig/internal/api/response"
	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/metrics"
	"github.com/finsig/finsig/internal/storage/archive"
	"github.com/finsig/finsig/internal/storage/bar"
	"go.uber.org/zap"
)

// DataHandler handles ticker data API requests.
type DataHandler struct {
	store       bar.Store
	snapshotter *archive.Snapshotter // nil disables snapshot-before-purge
	registry    *metrics.Registry
	logger      *zap.Logger
}

// NewDataHandler creates a new data handler.
func NewDataHandler(store bar.Store, snapshotter *archive.Snapshotter, registry *metrics.Registry, logger *zap.Logger) *DataHandler {
	return &DataHandler{
		store:       store,
		snapshotter: snapshotter,
		registry:    registry,
		logger:      logger,
	}
}

// List returns all stored bars in timestamp order.
func (h *DataHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"records": records,
		"total":   len(records),
	})
}

// Create ingests a single bar.
func (h *DataHandler) Create(w http.ResponseWriter, r *http.Request) {
	var b core.Bar
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrDataIntegrity, err))
		return
	}

	if err := b.Validate(); err != nil {
		response.Error(w, http.StatusUnprocessableEntity,
			core.WrapError(core.ErrDataIntegrity, err))
		return
	}

	record, err := h.store.Save(r.Context(), b)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	h.registry.RecordBarsIngested(1)
	h.updateStoredGauge(r)

	response.JSON(w, http.StatusCreated, record)
}

// BulkRequest is the request body for bulk ingestion.
type BulkRequest struct {
	Bars []core.Bar `json:"bars"`
}

// CreateBulk ingests many bars at once. Validation is all-or-nothing: the
// first malformed bar rejects the whole batch.
func (h *DataHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrDataIntegrity, err))
		return
	}

	if len(req.Bars) == 0 {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrNoData, fmt.Errorf("empty bars payload")))
		return
	}

	for i, b := range req.Bars {
		if err := b.Validate(); err != nil {
			response.Error(w, http.StatusUnprocessableEntity,
				core.WrapError(core.ErrDataIntegrity, fmt.Errorf("bar %d: %w", i, err)))
			return
		}
	}

	records, err := h.store.SaveBulk(r.Context(), req.Bars)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	h.registry.RecordBarsIngested(len(records))
	h.updateStoredGauge(r)
	h.logger.Info("ingested bars", zap.Int("count", len(records)))

	response.JSON(w, http.StatusCreated, map[string]any{
		"ingested": len(records),
	})
}

// Purge deletes all stored bars, archiving a snapshot first when cold
// storage is configured.
func (h *DataHandler) Purge(w http.ResponseWriter, r *http.Request) {
	var snapshotPath string

	if h.snapshotter != nil {
		bars, err := h.store.Bars(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}

		snapshotPath, err = h.snapshotter.Write(r.Context(), bars)
		if err != nil {
			// Refuse to purge if the safety copy failed
			response.Error(w, http.StatusInternalServerError, err)
			return
		}
		h.registry.RecordSnapshot()
	}

	deleted, err := h.store.DeleteAll(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	h.updateStoredGauge(r)
	h.logger.Info("purged bars",
		zap.Int("deleted", deleted),
		zap.String("snapshot", snapshotPath))

	body := map[string]any{"deleted": deleted}
	if snapshotPath != "" {
		body["snapshot"] = snapshotPath
	}
	response.JSON(w, http.StatusOK, body)
}

// Snapshots lists archived dataset snapshots, oldest first.
func (h *DataHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		response.Error(w, http.StatusNotFound,
			core.WrapError(core.ErrArchiveFailed, fmt.Errorf("archive storage not configured")))
		return
	}

	paths, err := h.snapshotter.List(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"snapshots": paths,
		"total":     len(paths),
	})
}

func (h *DataHandler) updateStoredGauge(r *http.Request) {
	if count, err := h.store.Count(r.Context()); err == nil {
		h.registry.SetBarsStored(count)
	}
}

package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/domain"
	"github.com/aiusecase/catalog-backend/internal/report"
)

type reportGenerator interface {
	Generate(ctx context.Context, records []domain.UseCase) (*report.Report, error)
}

type recordLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.UseCase, error)
}

// ReportHandler serves PDF generation. Rendering is memory-hungry, so only
// one report builds at a time; concurrent requests get 409 and retry.
type ReportHandler struct {
	generator reportGenerator
	records   recordLoader
	log       *slog.Logger
	busy      atomic.Bool
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(generator reportGenerator, records recordLoader, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		generator: generator,
		records:   records,
		log:       logger.With("handler", "report"),
	}
}

// reportRequest selects the records for a report, in render order.
type reportRequest struct {
	IDs []string `json:"ids"`
}

// acquire takes the single-build slot, answering 409 when it is held.
// Callers that get true must release with h.busy.Store(false).
func (h *ReportHandler) acquire(w http.ResponseWriter) bool {
	if !h.busy.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "A report is already being generated. Please try again shortly.")
		return false
	}
	return true
}

// Generate serves POST /api/report with {"ids": [...]}. Responds with the
// PDF as an attachment.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !h.acquire(w) {
		return
	}
	defer h.busy.Store(false)

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	records, err := h.loadRecords(r.Context(), req.IDs)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	h.respondPDF(w, r, records)
}

// Export serves GET /api/use-cases/{id}/pdf: a single-record export. It
// shares the single-build slot with Generate.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !h.acquire(w) {
		return
	}
	defer h.busy.Store(false)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	u, err := h.records.Get(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	h.respondPDF(w, r, []domain.UseCase{*u})
}

func (h *ReportHandler) respondPDF(w http.ResponseWriter, r *http.Request, records []domain.UseCase) {
	rep, err := h.generator.Generate(r.Context(), records)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(rep.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(rep.Data) //nolint:errcheck
}

func (h *ReportHandler) loadRecords(ctx context.Context, ids []string) ([]domain.UseCase, error) {
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "select at least one record")
	}

	records := make([]domain.UseCase, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.NewValidationError("ids", fmt.Sprintf("invalid record id %q", raw))
		}
		u, err := h.records.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, *u)
	}
	return records, nil
}

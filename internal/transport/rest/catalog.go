package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/catalog"
	"github.com/aiusecase/catalog-backend/internal/domain"
)

type catalogService interface {
	View(ctx context.Context, q catalog.Query) (catalog.State, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.UseCase, error)
	SummaryLimit() int
}

// CatalogHandler serves the public read surface.
type CatalogHandler struct {
	catalog catalogService
	log     *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: svc,
		log:     logger.With("handler", "catalog"),
	}
}

// Card is one catalog list entry: enough for the grid, not the whole record.
type Card struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	AITool    string   `json:"ai_tool"`
	ToolName  string   `json:"tool_name"`
	ForUseBy  []string `json:"for_use_by"`
	Summary   string   `json:"summary"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// ListResponse is the catalog view: filtered, sorted, with the active
// record pointer resolved server-side.
type ListResponse struct {
	Total    int    `json:"total"`
	ActiveID string `json:"active_id,omitempty"`
	Records  []Card `json:"records"`
}

// List serves GET /api/use-cases.
//
// Query parameters: search (free text), audience and tool (repeatable,
// OR within, AND across), sort (title-asc, title-desc, tool, audience,
// newest, updated).
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := catalog.Query{
		Search:    params.Get("search"),
		Audiences: cleanValues(params["audience"]),
		Tools:     cleanValues(params["tool"]),
		Sort:      params.Get("sort"),
	}

	state, err := h.catalog.View(r.Context(), q)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	resp := ListResponse{
		Total:   len(state.Visible),
		Records: make([]Card, 0, len(state.Visible)),
	}
	if state.ActiveID != uuid.Nil {
		resp.ActiveID = state.ActiveID.String()
	}
	limit := h.catalog.SummaryLimit()
	for _, u := range state.Visible {
		card := Card{
			ID:       u.ID.String(),
			Title:    u.Title,
			AITool:   u.AITool,
			ToolName: domain.ToolName(u.AITool),
			ForUseBy: u.Audiences,
			Summary:  u.Summary(limit),
		}
		if !u.UpdatedAt.IsZero() {
			card.UpdatedAt = u.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		resp.Records = append(resp.Records, card)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get serves GET /api/use-cases/{id} with the full record.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	u, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.EncodeRecord(*u))
}

// cleanValues splits comma-joined values, trims and drops blanks, so both
// ?tool=GEM&tool=NLM and ?tool=GEM,NLM work.
func cleanValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

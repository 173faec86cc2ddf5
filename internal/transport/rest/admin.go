package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/adapter/blob"
	"github.com/aiusecase/catalog-backend/internal/domain"
	"github.com/aiusecase/catalog-backend/internal/editor"
)

// maxFormMemory bounds the in-memory part of multipart parsing. Uploads
// above the per-file limit are rejected by the service with a clear
// message, so the transport cap only needs headroom for two screenshots.
const maxFormMemory = 12 << 20

type editorService interface {
	StartEdit(ctx context.Context, id uuid.UUID) (*domain.UseCase, error)
	Submit(ctx context.Context, in editor.SubmitInput) (*domain.UseCase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminHandler serves the record editor endpoints. Admin gating happens in
// the middleware chain; the editor service re-checks.
type AdminHandler struct {
	editor editorService
	log    *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc editorService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		editor: svc,
		log:    logger.With("handler", "admin"),
	}
}

// Edit serves GET /api/admin/use-cases/{id}/edit: the record loaded into
// the editor form.
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	u, err := h.editor.StartEdit(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.EncodeRecord(*u))
}

// Create serves POST /api/admin/use-cases: a multipart form with a
// "record" JSON part plus optional screenshot_setup / screenshot_use files.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := parseSubmitForm(r, uuid.Nil)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	saved, err := h.editor.Submit(r.Context(), *in)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, domain.EncodeRecord(*saved))
}

// Update serves PUT /api/admin/use-cases/{id}: same multipart form as
// Create, applied as a full overwrite.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	in, err := parseSubmitForm(r, id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	saved, err := h.editor.Submit(r.Context(), *in)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.EncodeRecord(*saved))
}

// Delete serves DELETE /api/admin/use-cases/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := h.editor.Delete(r.Context(), id); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseSubmitForm decodes the editor's multipart form into a SubmitInput.
func parseSubmitForm(r *http.Request, id uuid.UUID) (*editor.SubmitInput, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, domain.NewValidationError("form", fmt.Sprintf("invalid multipart form: %v", err))
	}

	var rec domain.RecordJSON
	if err := json.Unmarshal([]byte(r.FormValue("record")), &rec); err != nil {
		return nil, domain.NewValidationError("record", "record part must be valid JSON")
	}
	u := domain.DecodeRecord(rec)

	in := &editor.SubmitInput{
		ID:          id,
		Title:       u.Title,
		AITool:      u.AITool,
		Audiences:   u.Audiences,
		Sections:    u.Sections,
		SubmittedBy: u.SubmittedBy,
		Attachments: map[domain.ScreenshotSlot]editor.Attachment{},
		Remove:      map[domain.ScreenshotSlot]bool{},
	}

	for _, slot := range []domain.ScreenshotSlot{domain.SlotSetup, domain.SlotUse} {
		field := "screenshot_" + string(slot)

		if r.FormValue("remove_"+field) == "true" {
			in.Remove[slot] = true
		}

		file, header, err := r.FormFile(field)
		if err == http.ErrMissingFile {
			continue
		}
		if err != nil {
			return nil, domain.NewValidationError(field, "unreadable upload")
		}
		data, err := io.ReadAll(io.LimitReader(file, blob.MaxUploadSize+1))
		file.Close() //nolint:errcheck
		if err != nil {
			return nil, domain.NewValidationError(field, "unreadable upload")
		}

		in.Attachments[slot] = editor.Attachment{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	return in, nil
}

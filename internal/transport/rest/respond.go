package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// respondError maps the domain error taxonomy onto HTTP statuses. Messages
// for user-correctable failures pass through verbatim; everything else is
// logged and masked.
func respondError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make(map[string]string, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			fields[fe.Field] = fe.Message
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}

	if aErr, ok := domain.AsAssetError(err); ok {
		status := http.StatusBadGateway
		switch aErr.Kind {
		case domain.AssetSizeExceeded, domain.AssetInvalidType:
			status = http.StatusBadRequest
		case domain.AssetPermission:
			status = http.StatusForbidden
		case domain.AssetCanceled:
			status = http.StatusBadRequest
		}
		writeError(w, status, aErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrConnectivity):
		writeError(w, http.StatusServiceUnavailable,
			"Connection failed. Please check your connection and try again.")
	default:
		log.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Package editor implements the admin write path: creating, updating and
// deleting catalog records together with their screenshot assets.
package editor

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/domain"
	"github.com/aiusecase/catalog-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type useCaseRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.UseCase, error)
	Create(ctx context.Context) (uuid.UUID, error)
	Put(ctx context.Context, id uuid.UUID, u domain.UseCase) (*domain.UseCase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type assetStore interface {
	Upload(ctx context.Context, recordID string, slot domain.ScreenshotSlot, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the editor business logic.
type Service struct {
	log    *slog.Logger
	repo   useCaseRepo
	assets assetStore
}

// NewService creates a new Editor service.
func NewService(logger *slog.Logger, repo useCaseRepo, assets assetStore) *Service {
	return &Service{
		log:    logger.With("service", "editor"),
		repo:   repo,
		assets: assets,
	}
}

// ---------------------------------------------------------------------------
// Authorization helpers (private)
// ---------------------------------------------------------------------------

// hasAdmin reports whether the context carries an admin identity. The
// transport layer also gates admin routes; the service re-checks so it
// cannot be misused from another entry point.
func hasAdmin(ctx context.Context) bool {
	return ctxutil.IsAdmin(ctx)
}

// adminErr distinguishes a missing identity from an insufficient one.
func adminErr(ctx context.Context) error {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	return domain.ErrForbidden
}

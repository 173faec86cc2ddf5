package editor

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// Delete removes a record and both of its screenshot assets. Asset deletes
// run first and are best effort: a failed or missing asset never blocks
// removal of the record itself.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if !hasAdmin(ctx) {
		return adminErr(ctx)
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, slot := range []domain.ScreenshotSlot{domain.SlotSetup, domain.SlotUse} {
		url := u.Screenshots.Get(slot)
		if url == "" {
			continue
		}
		if err := s.assets.Delete(ctx, url); err != nil {
			s.log.WarnContext(ctx, "screenshot delete failed",
				slog.String("record_id", id.String()),
				slog.String("slot", string(slot)),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("record_id", id.String()),
		slog.String("title", u.Title),
	)

	return nil
}

package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// Submit validates the form, resolves screenshot assets and writes the
// record as a full overwrite.
//
// New records obtain their id before any upload, so assets are keyed by the
// final record id from the start. On an edit, slots without an attachment
// or removal keep their current asset.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.UseCase, error) {
	if !hasAdmin(ctx) {
		return nil, adminErr(ctx)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	record := in.record()
	isNew := in.IsNew()

	if isNew {
		id, err := s.repo.Create(ctx)
		if err != nil {
			return nil, fmt.Errorf("create record: %w", err)
		}
		record.ID = id
	} else {
		existing, err := s.repo.Get(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		record.Screenshots = existing.Screenshots
	}

	for slot := range in.Remove {
		if !in.Remove[slot] {
			continue
		}
		s.removeAsset(ctx, &record, slot)
	}

	for _, slot := range []domain.ScreenshotSlot{domain.SlotSetup, domain.SlotUse} {
		att, ok := in.Attachments[slot]
		if !ok {
			continue
		}
		url, err := s.assets.Upload(ctx, record.ID.String(), slot, att.Data, att.ContentType)
		if err != nil {
			if isNew {
				s.discardDraft(ctx, record.ID)
			}
			return nil, fmt.Errorf("upload %s screenshot: %w", slot, err)
		}
		setSlot(&record.Screenshots, slot, url)
	}

	saved, err := s.repo.Put(ctx, record.ID, record)
	if err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	s.log.InfoContext(ctx, "record saved",
		slog.String("record_id", saved.ID.String()),
		slog.String("title", saved.Title),
		slog.Bool("created", isNew),
	)

	return saved, nil
}

// removeAsset deletes the slot's asset and clears its URL. Store failures
// are logged and swallowed; the slot is cleared regardless.
func (s *Service) removeAsset(ctx context.Context, record *domain.UseCase, slot domain.ScreenshotSlot) {
	url := record.Screenshots.Get(slot)
	if url == "" {
		return
	}
	if err := s.assets.Delete(ctx, url); err != nil {
		s.log.WarnContext(ctx, "screenshot delete failed",
			slog.String("record_id", record.ID.String()),
			slog.String("slot", string(slot)),
			slog.String("error", err.Error()),
		)
	}
	setSlot(&record.Screenshots, slot, "")
}

// discardDraft removes the placeholder row created for a new record whose
// upload failed. Best effort: the row is invisible to the catalog anyway.
func (s *Service) discardDraft(ctx context.Context, id uuid.UUID) {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "draft cleanup failed",
			slog.String("record_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}

func setSlot(s *domain.Screenshots, slot domain.ScreenshotSlot, url string) {
	if slot == domain.SlotUse {
		s.Use = url
		return
	}
	s.Setup = url
}

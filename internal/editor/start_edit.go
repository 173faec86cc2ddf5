package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// StartEdit loads the record into the editor. A zero id opens a blank
// draft; section bodies start empty and show their placeholders only at
// render time.
func (s *Service) StartEdit(ctx context.Context, id uuid.UUID) (*domain.UseCase, error) {
	if !hasAdmin(ctx) {
		return nil, adminErr(ctx)
	}

	if id == uuid.Nil {
		return &domain.UseCase{}, nil
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Audiences = domain.NormalizeAudiences(u.Audiences)
	return u, nil
}

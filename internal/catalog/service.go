package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type useCaseRepo interface {
	List(ctx context.Context, orderBy string) ([]domain.UseCase, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.UseCase, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the read-side catalog logic: loading records and
// producing filtered, sorted views of them.
type Service struct {
	log          *slog.Logger
	repo         useCaseRepo
	summaryLimit int
	defaultSort  string
}

// NewService creates a new Catalog service.
func NewService(logger *slog.Logger, repo useCaseRepo, summaryLimit int, defaultSort string) *Service {
	return &Service{
		log:          logger.With("service", "catalog"),
		repo:         repo,
		summaryLimit: summaryLimit,
		defaultSort:  defaultSort,
	}
}

// Load fetches all records in base title order and normalizes them for
// display. It is the single source of catalog state.
func (s *Service) Load(ctx context.Context) ([]domain.UseCase, error) {
	records, err := s.repo.List(ctx, "title")
	if err != nil {
		return nil, fmt.Errorf("list use cases: %w", err)
	}

	for i := range records {
		records[i].Audiences = domain.NormalizeAudiences(records[i].Audiences)
	}

	s.log.DebugContext(ctx, "catalog loaded", slog.Int("count", len(records)))

	return records, nil
}

// View loads the catalog and applies the given query. An empty sort key
// uses the configured default.
func (s *Service) View(ctx context.Context, q Query) (State, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return State{}, err
	}

	if q.Sort == "" {
		q.Sort = s.defaultSort
	}

	return Apply(State{Records: records}, q), nil
}

// Get fetches a single record by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.UseCase, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Audiences = domain.NormalizeAudiences(u.Audiences)
	return u, nil
}

// SummaryLimit exposes the configured card summary truncation limit.
func (s *Service) SummaryLimit() int {
	return s.summaryLimit
}

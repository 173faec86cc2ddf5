// Package usecase implements the use-case record store using PostgreSQL.
// Records are stored one row per record; the six text sections and the two
// screenshot URLs live together in a jsonb column, mirroring the document
// shape the catalog was originally exported from.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/aiusecase/catalog-backend/internal/adapter/postgres"
	"github.com/aiusecase/catalog-backend/internal/domain"
)

// Repo provides use-case persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new use-case repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, title, ai_tool, for_use_by, sections, submitted_by, created_at, updated_at`

const listSQL = `
SELECT ` + columns + `
FROM use_cases
WHERE title <> ''
ORDER BY %s`

const getSQL = `
SELECT ` + columns + `
FROM use_cases
WHERE id = $1`

const createSQL = `
INSERT INTO use_cases (id, title, ai_tool, for_use_by, sections, created_at, updated_at)
VALUES ($1, '', '', '{}', '{}'::jsonb, now(), now())
RETURNING id`

const putSQL = `
UPDATE use_cases
SET title = $2, ai_tool = $3, for_use_by = $4, sections = $5,
    submitted_by = $6, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at`

const deleteSQL = `
DELETE FROM use_cases
WHERE id = $1`

// sectionsDoc is the jsonb shape of the sections column: the six fixed text
// keys plus the two screenshot URLs, exactly as the original documents held them.
type sectionsDoc struct {
	Purpose         string `json:"purpose"`
	Instructions    string `json:"instructions"`
	Prompts         string `json:"prompts"`
	Variations      string `json:"variations"`
	Notes           string `json:"notes"`
	Links           string `json:"links"`
	ScreenshotSetup string `json:"screenshot_setup"`
	ScreenshotUse   string `json:"screenshot_use"`
}

func toDoc(u domain.UseCase) sectionsDoc {
	return sectionsDoc{
		Purpose:         u.Sections.Purpose,
		Instructions:    u.Sections.Instructions,
		Prompts:         u.Sections.Prompts,
		Variations:      u.Sections.Variations,
		Notes:           u.Sections.Notes,
		Links:           u.Sections.Links,
		ScreenshotSetup: u.Screenshots.Setup,
		ScreenshotUse:   u.Screenshots.Use,
	}
}

// List returns all records ordered by the given key.
// Supported keys: "title" (default), "created_at", "updated_at".
// Stub rows left behind by an abandoned create (empty title) are excluded.
func (r *Repo) List(ctx context.Context, orderBy string) ([]domain.UseCase, error) {
	var orderClause string
	switch orderBy {
	case "created_at":
		orderClause = "created_at DESC"
	case "updated_at":
		orderClause = "updated_at DESC"
	default:
		orderClause = "title ASC"
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, fmt.Sprintf(listSQL, orderClause))
	if err != nil {
		return nil, postgres.MapError(err, "use_case", "list")
	}
	defer rows.Close()

	result, err := scanUseCases(rows)
	if err != nil {
		return nil, postgres.MapError(err, "use_case", "list")
	}

	return result, nil
}

// Get returns a single record by id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.UseCase, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getSQL, id)
	u, err := scanUseCase(row)
	if err != nil {
		return nil, postgres.MapError(err, "use_case", id.String())
	}

	return u, nil
}

// Create allocates a new record id by inserting a stub row, so that uploaded
// screenshot assets can be keyed by id before the record content exists.
// The stub is filled in by the Put that follows.
func (r *Repo) Create(ctx context.Context) (uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := uuid.New()
	if err := querier.QueryRow(ctx, createSQL, id).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, "use_case", id.String())
	}

	return id, nil
}

// Put overwrites the full record content. There is no partial patch: the
// caller always supplies the complete record, and the last write wins.
// updated_at is server-assigned; created_at is never touched.
func (r *Repo) Put(ctx context.Context, id uuid.UUID, u domain.UseCase) (*domain.UseCase, error) {
	sections, err := json.Marshal(toDoc(u))
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}

	var submittedBy *string
	if u.SubmittedBy != "" {
		submittedBy = &u.SubmittedBy
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	saved := u
	saved.ID = id
	saved.Audiences = domain.NormalizeAudiences(u.Audiences)
	err = querier.QueryRow(ctx, putSQL,
		id, u.Title, u.AITool, saved.Audiences, sections, submittedBy,
	).Scan(&saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "use_case", id.String())
	}

	return &saved, nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSQL, id); err != nil {
		return postgres.MapError(err, "use_case", id.String())
	}

	return nil
}

// Ping reports database reachability for health checks.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanUseCase(row pgx.Row) (*domain.UseCase, error) {
	var (
		u           domain.UseCase
		doc         sectionsDoc
		sections    []byte
		submittedBy *string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&u.ID, &u.Title, &u.AITool, &u.Audiences, &sections, &submittedBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sections, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}

	u.Sections = domain.Sections{
		Purpose:      doc.Purpose,
		Instructions: doc.Instructions,
		Prompts:      doc.Prompts,
		Variations:   doc.Variations,
		Notes:        doc.Notes,
		Links:        doc.Links,
	}
	u.Screenshots = domain.Screenshots{Setup: doc.ScreenshotSetup, Use: doc.ScreenshotUse}
	if submittedBy != nil {
		u.SubmittedBy = *submittedBy
	}
	u.Audiences = domain.NormalizeAudiences(u.Audiences)
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt

	return &u, nil
}

func scanUseCases(rows pgx.Rows) ([]domain.UseCase, error) {
	result := []domain.UseCase{}
	for rows.Next() {
		u, err := scanUseCase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

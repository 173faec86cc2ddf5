package rest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiusecase/catalog-backend/internal/domain"
	"github.com/aiusecase/catalog-backend/internal/report"
)

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, records []domain.UseCase) (*report.Report, error)
}

func (m *mockGenerator) Generate(ctx context.Context, records []domain.UseCase) (*report.Report, error) {
	return m.GenerateFunc(ctx, records)
}

type mockLoader struct {
	GetFunc func(ctx context.Context, id uuid.UUID) (*domain.UseCase, error)
}

func (m *mockLoader) Get(ctx context.Context, id uuid.UUID) (*domain.UseCase, error) {
	return m.GetFunc(ctx, id)
}

func loaderFor(records ...domain.UseCase) *mockLoader {
	byID := make(map[uuid.UUID]domain.UseCase, len(records))
	for _, u := range records {
		byID[u.ID] = u
	}
	return &mockLoader{
		GetFunc: func(_ context.Context, id uuid.UUID) (*domain.UseCase, error) {
			u, ok := byID[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &u, nil
		},
	}
}

func TestReportHandler_Generate(t *testing.T) {
	a := domain.UseCase{ID: uuid.New(), Title: "B record", AITool: "GEM"}
	b := domain.UseCase{ID: uuid.New(), Title: "A record", AITool: "NLM"}

	var rendered []string
	gen := &mockGenerator{
		GenerateFunc: func(_ context.Context, records []domain.UseCase) (*report.Report, error) {
			for _, u := range records {
				rendered = append(rendered, u.Title)
			}
			return &report.Report{Filename: "ai-use-cases-2.pdf", Data: []byte("%PDF-fake"), Pages: 4}, nil
		},
	}
	h := NewReportHandler(gen, loaderFor(a, b), testLogger())

	body := bytes.NewBufferString(`{"ids":["` + a.ID.String() + `","` + b.ID.String() + `"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ai-use-cases-2.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-fake", rec.Body.String())

	// Selection order is render order, not catalog order.
	assert.Equal(t, []string{"B record", "A record"}, rendered)
}

func TestReportHandler_Generate_EmptySelection(t *testing.T) {
	h := NewReportHandler(&mockGenerator{}, loaderFor(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewBufferString(`{"ids":[]}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_Generate_BadBody(t *testing.T) {
	h := NewReportHandler(&mockGenerator{}, loaderFor(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_Generate_UnknownRecord(t *testing.T) {
	h := NewReportHandler(&mockGenerator{}, loaderFor(), testLogger())

	body := bytes.NewBufferString(`{"ids":["` + uuid.NewString() + `"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler_Generate_Busy(t *testing.T) {
	u := domain.UseCase{ID: uuid.New(), Title: "Record", AITool: "GEM"}
	h := NewReportHandler(&mockGenerator{}, loaderFor(u), testLogger())
	h.busy.Store(true)

	body := bytes.NewBufferString(`{"ids":["` + u.ID.String() + `"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	// The flag belongs to the running generation; a rejected request must
	// not clear it.
	assert.True(t, h.busy.Load())
}

func TestReportHandler_Export(t *testing.T) {
	u := domain.UseCase{ID: uuid.New(), Title: "Essay feedback", AITool: "GEM"}

	gen := &mockGenerator{
		GenerateFunc: func(_ context.Context, records []domain.UseCase) (*report.Report, error) {
			require.Len(t, records, 1)
			require.Equal(t, u.ID, records[0].ID)
			return &report.Report{Filename: "Essayfeedback.pdf", Data: []byte("%PDF-fake"), Pages: 1}, nil
		},
	}
	h := NewReportHandler(gen, loaderFor(u), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/use-cases/"+u.ID.String()+"/pdf", nil)
	req.SetPathValue("id", u.ID.String())
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Essayfeedback.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestReportHandler_Export_NotFound(t *testing.T) {
	h := NewReportHandler(&mockGenerator{}, loaderFor(), testLogger())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/use-cases/"+id+"/pdf", nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler_Export_Busy(t *testing.T) {
	u := domain.UseCase{ID: uuid.New(), Title: "Record", AITool: "GEM"}
	h := NewReportHandler(&mockGenerator{}, loaderFor(u), testLogger())
	h.busy.Store(true)

	req := httptest.NewRequest(http.MethodGet, "/api/use-cases/"+u.ID.String()+"/pdf", nil)
	req.SetPathValue("id", u.ID.String())
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	// Single exports share the build slot with full reports.
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, h.busy.Load())
}

func TestReportHandler_GeneratorValidationError(t *testing.T) {
	u := domain.UseCase{ID: uuid.New(), Title: "Record", AITool: "GEM"}
	gen := &mockGenerator{
		GenerateFunc: func(_ context.Context, _ []domain.UseCase) (*report.Report, error) {
			return nil, domain.NewValidationError("records", "too many records selected")
		},
	}
	h := NewReportHandler(gen, loaderFor(u), testLogger())

	body := bytes.NewBufferString(`{"ids":["` + u.ID.String() + `"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

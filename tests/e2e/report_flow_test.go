//go:build e2e

package e2e_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// TestE2E_SingleRecordExport verifies GET /api/use-cases/{id}/pdf returns a
// PDF attachment named after the record.
func TestE2E_SingleRecordExport(t *testing.T) {
	ts := setupTestServer(t)
	id := ts.seedRecord(t, domain.UseCase{
		Title:     "Essay feedback",
		AITool:    "GEM",
		Audiences: []string{"Teachers"},
		Sections:  domain.Sections{Purpose: "Structured feedback on student essays."},
	})

	resp, data := ts.do(t, http.MethodGet, "/api/use-cases/"+id.String()+"/pdf", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Essayfeedback.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "body should be a PDF document")
}

// TestE2E_MultiRecordReport verifies POST /api/report renders the selected
// records, screenshots included, in selection order.
func TestE2E_MultiRecordReport(t *testing.T) {
	ts := setupTestServer(t)

	// One record carries a stored screenshot so the generator exercises the
	// asset fetch path.
	shotURL := "mem://use-cases/seeded/setup"
	ts.Assets.Put(shotURL, pngBytes(t, 8, 5))

	first := ts.seedRecord(t, domain.UseCase{
		Title:       "Essay feedback",
		AITool:      "GEM",
		Audiences:   []string{"Teachers"},
		Screenshots: domain.Screenshots{Setup: shotURL},
	})
	second := ts.seedRecord(t, domain.UseCase{
		Title:     "Quiz builder",
		AITool:    "NLM",
		Audiences: []string{"Teachers"},
	})

	body := strings.NewReader(`{"ids":["` + first.String() + `","` + second.String() + `"]}`)
	resp, data := ts.do(t, http.MethodPost, "/api/report", "", body, "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ai-use-cases-2.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	assert.Contains(t, ts.Assets.Fetches, shotURL)
}

// TestE2E_ReportEmptySelection verifies an empty selection is rejected.
func TestE2E_ReportEmptySelection(t *testing.T) {
	ts := setupTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/report", "", strings.NewReader(`{"ids":[]}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestE2E_ReportUnknownRecord verifies a selection referencing a missing
// record fails with 404.
func TestE2E_ReportUnknownRecord(t *testing.T) {
	ts := setupTestServer(t)

	body := strings.NewReader(`{"ids":["` + uuid.NewString() + `"]}`)
	resp, _ := ts.do(t, http.MethodPost, "/api/report", "", body, "application/json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

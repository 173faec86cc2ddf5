package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiusecase/catalog-backend/internal/domain"
	"github.com/aiusecase/catalog-backend/internal/editor"
)

type mockEditor struct {
	StartEditFunc func(ctx context.Context, id uuid.UUID) (*domain.UseCase, error)
	SubmitFunc    func(ctx context.Context, in editor.SubmitInput) (*domain.UseCase, error)
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEditor) StartEdit(ctx context.Context, id uuid.UUID) (*domain.UseCase, error) {
	return m.StartEditFunc(ctx, id)
}

func (m *mockEditor) Submit(ctx context.Context, in editor.SubmitInput) (*domain.UseCase, error) {
	return m.SubmitFunc(ctx, in)
}

func (m *mockEditor) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

// submitForm builds the editor's multipart request body: a "record" JSON
// part plus optional screenshot files and remove flags.
type submitForm struct {
	record  domain.RecordJSON
	files   map[string][]byte
	removes []string
}

func (f submitForm) request(t *testing.T, method, target string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	recJSON, err := json.Marshal(f.record)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("record", string(recJSON)))

	for field, data := range f.files {
		part, err := mw.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for _, field := range f.removes {
		require.NoError(t, mw.WriteField("remove_"+field, "true"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAdminHandler_Create(t *testing.T) {
	saved := domain.UseCase{ID: uuid.New(), Title: "Essay feedback", AITool: "GEM", Audiences: []string{"Teachers"}}

	var captured editor.SubmitInput
	svc := &mockEditor{
		SubmitFunc: func(_ context.Context, in editor.SubmitInput) (*domain.UseCase, error) {
			captured = in
			return &saved, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	form := submitForm{
		record: domain.RecordJSON{
			Title:    "Essay feedback",
			AITool:   "GEM",
			ForUseBy: domain.AudienceList{"Teachers"},
		},
		files: map[string][]byte{"screenshot_setup": []byte("png-bytes")},
	}
	rec := httptest.NewRecorder()
	h.Create(rec, form.request(t, http.MethodPost, "/api/admin/use-cases"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uuid.Nil, captured.ID)
	assert.Equal(t, "Essay feedback", captured.Title)
	assert.Equal(t, []string{"Teachers"}, captured.Audiences)
	require.Contains(t, captured.Attachments, domain.SlotSetup)
	assert.Equal(t, []byte("png-bytes"), captured.Attachments[domain.SlotSetup].Data)
	assert.NotContains(t, captured.Attachments, domain.SlotUse)

	var got domain.RecordJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, saved.ID.String(), got.ID)
}

func TestAdminHandler_Create_BadRecordJSON(t *testing.T) {
	h := NewAdminHandler(&mockEditor{}, testLogger())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("record", "{not json"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/use-cases", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "record")
}

func TestAdminHandler_Create_NotMultipart(t *testing.T) {
	h := NewAdminHandler(&mockEditor{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/use-cases",
		bytes.NewBufferString(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminHandler_Update(t *testing.T) {
	id := uuid.New()
	saved := domain.UseCase{ID: id, Title: "Updated", AITool: "NLM", Audiences: []string{"Staff"}}

	var captured editor.SubmitInput
	svc := &mockEditor{
		SubmitFunc: func(_ context.Context, in editor.SubmitInput) (*domain.UseCase, error) {
			captured = in
			return &saved, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	form := submitForm{
		record: domain.RecordJSON{
			Title:    "Updated",
			AITool:   "NLM",
			ForUseBy: domain.AudienceList{"Staff"},
		},
		removes: []string{"screenshot_use"},
	}
	req := form.request(t, http.MethodPut, "/api/admin/use-cases/"+id.String())
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, captured.ID)
	assert.True(t, captured.Remove[domain.SlotUse])
	assert.False(t, captured.Remove[domain.SlotSetup])
	assert.Empty(t, captured.Attachments)
}

func TestAdminHandler_Update_ValidationError(t *testing.T) {
	id := uuid.New()
	svc := &mockEditor{
		SubmitFunc: func(_ context.Context, _ editor.SubmitInput) (*domain.UseCase, error) {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "title", Message: "required"},
				{Field: "for_use_by", Message: "select at least one audience"},
			}}
		},
	}
	h := NewAdminHandler(svc, testLogger())

	form := submitForm{record: domain.RecordJSON{AITool: "GEM"}}
	req := form.request(t, http.MethodPut, "/api/admin/use-cases/"+id.String())
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "required", resp.Fields["title"])
	assert.Equal(t, "select at least one audience", resp.Fields["for_use_by"])
}

func TestAdminHandler_Edit(t *testing.T) {
	u := domain.UseCase{ID: uuid.New(), Title: "Essay feedback", AITool: "GEM", Audiences: []string{"Teachers"}}

	svc := &mockEditor{
		StartEditFunc: func(_ context.Context, id uuid.UUID) (*domain.UseCase, error) {
			require.Equal(t, u.ID, id)
			return &u, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/use-cases/"+u.ID.String()+"/edit", nil)
	req.SetPathValue("id", u.ID.String())
	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.RecordJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Essay feedback", got.Title)
}

func TestAdminHandler_Delete(t *testing.T) {
	id := uuid.New()
	svc := &mockEditor{
		DeleteFunc: func(_ context.Context, got uuid.UUID) error {
			require.Equal(t, id, got)
			return nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/use-cases/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminHandler_Delete_Forbidden(t *testing.T) {
	svc := &mockEditor{
		DeleteFunc: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrForbidden
		},
	}
	h := NewAdminHandler(svc, testLogger())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/use-cases/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

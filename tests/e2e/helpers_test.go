//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/aiusecase/catalog-backend/internal/adapter/blob"
	"github.com/aiusecase/catalog-backend/internal/adapter/postgres/testhelper"
	usecaserepo "github.com/aiusecase/catalog-backend/internal/adapter/postgres/usecase"
	authpkg "github.com/aiusecase/catalog-backend/internal/auth"
	"github.com/aiusecase/catalog-backend/internal/catalog"
	"github.com/aiusecase/catalog-backend/internal/domain"
	"github.com/aiusecase/catalog-backend/internal/editor"
	"github.com/aiusecase/catalog-backend/internal/report"
	"github.com/aiusecase/catalog-backend/internal/transport/middleware"
	"github.com/aiusecase/catalog-backend/internal/transport/rest"
)

const testJWTSecret = "e2e-test-secret-key-32-characters!!"

// testServer wraps the full-stack HTTP server for E2E tests: real services
// and a real PostgreSQL container, with an in-memory asset store.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Repo   *usecaserepo.Repo
	Assets *blob.MemoryStore
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	// Tests share one container; each starts from an empty catalog.
	_, err := pool.Exec(context.Background(), "TRUNCATE use_cases")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	repo := usecaserepo.New(pool)
	assets := blob.NewMemory()

	catalogSvc := catalog.NewService(logger, repo, 200, catalog.SortUpdated)
	editorSvc := editor.NewService(logger, repo, assets)
	generator := report.NewGenerator(logger, assets, 200, 2*time.Second)

	jwtManager := authpkg.NewJWTManager(testJWTSecret, "aicatalog-e2e")

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := rest.NewRouter(rest.Handlers{
		Catalog: rest.NewCatalogHandler(catalogSvc, logger),
		Admin:   rest.NewAdminHandler(editorSvc, logger),
		Report:  rest.NewReportHandler(generator, catalogSvc, logger),
		Health:  rest.NewHealthHandler(repo, "e2e"),
	}, limiter.Limit(1000))

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Auth(jwtManager),
		middleware.Logger(logger),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Repo:   repo,
		Assets: assets,
		jwt:    jwtManager,
	}
}

// token mints a bearer token for the given role.
func (ts *testServer) token(t *testing.T, subject, role string) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(subject, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) adminToken(t *testing.T) string {
	return ts.token(t, "admin@example.com", authpkg.RoleAdmin)
}

// seedRecord inserts a record through the repository and returns its id.
func (ts *testServer) seedRecord(t *testing.T, u domain.UseCase) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id, err := ts.Repo.Create(ctx)
	require.NoError(t, err)
	_, err = ts.Repo.Put(ctx, id, u)
	require.NoError(t, err)
	return id
}

// do sends a request with an optional bearer token and decodes the JSON body.
func (ts *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (ts *testServer) getJSON(t *testing.T, path, token string, out any) int {
	t.Helper()

	resp, data := ts.do(t, http.MethodGet, path, token, nil, "")
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.Unmarshal(data, out))
	}
	return resp.StatusCode
}

// recordForm builds the editor's multipart body.
func recordForm(t *testing.T, rec domain.RecordJSON, files map[string][]byte, removes ...string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	recJSON, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("record", string(recJSON)))

	for field, data := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, field, field+".png"))
		header.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for _, field := range removes {
		require.NoError(t, mw.WriteField("remove_"+field, "true"))
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

// pngBytes encodes a small solid PNG for upload tests.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

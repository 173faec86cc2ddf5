package rest

import (
	"net/http"

	"github.com/aiusecase/catalog-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Catalog *CatalogHandler
	Admin   *AdminHandler
	Report  *ReportHandler
	Health  *HealthHandler
}

// NewRouter mounts all routes. The catalog read surface is public; the
// admin surface requires an admin bearer token; report generation is
// rate-limited per client.
func NewRouter(h Handlers, reportLimit middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/use-cases", h.Catalog.List)
	mux.HandleFunc("GET /api/use-cases/{id}", h.Catalog.Get)

	mux.Handle("GET /api/use-cases/{id}/pdf", reportLimit(http.HandlerFunc(h.Report.Export)))
	mux.Handle("POST /api/report", reportLimit(http.HandlerFunc(h.Report.Generate)))

	admin := middleware.RequireAdmin
	mux.Handle("GET /api/admin/use-cases/{id}/edit", admin(http.HandlerFunc(h.Admin.Edit)))
	mux.Handle("POST /api/admin/use-cases", admin(http.HandlerFunc(h.Admin.Create)))
	mux.Handle("PUT /api/admin/use-cases/{id}", admin(http.HandlerFunc(h.Admin.Update)))
	mux.Handle("DELETE /api/admin/use-cases/{id}", admin(http.HandlerFunc(h.Admin.Delete)))

	return mux
}

package middleware

import (
	"net/http"

	"github.com/aiusecase/catalog-backend/pkg/ctxutil"
)

// RequireAdmin gates the editor surface: 401 without an identity, 403 for
// an identity lacking the admin role. Runs after Auth in the chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := ctxutil.IdentityFromCtx(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !id.Admin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

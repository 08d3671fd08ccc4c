package http

import (
	"net/http"
	"strings"

	"dresscircle-checkout/internal/logger"
	"dresscircle-checkout/internal/security"
)

// AuthMiddleware validates the Bearer token on every request and attaches
// the customer claims to the context. Tokens are issued elsewhere; this
// service only validates.
func AuthMiddleware(tokenManager security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokenManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Debug("Rejected request with invalid token", "path", r.URL.Path, "error", err)
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

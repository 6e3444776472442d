package vendors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"trade2cart/internal/auth"
	apperrors "trade2cart/internal/errors"
)

// RequireApproved resolves the authenticated phone number to a vendor profile
// and rejects callers that are unregistered or not yet approved. The resolved
// vendor is stored in the request context for handlers downstream.
func RequireApproved(repo Repository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
				return
			}

			v, err := repo.FindByPhone(r.Context(), principal.Phone)
			if err != nil {
				if _, ok := apperrors.IsNotFoundError(err); ok {
					writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile not registered")
					return
				}
				logger.Error("resolving vendor failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
				return
			}

			if !v.Approved() {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile is "+v.Status)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithVendor(r.Context(), v)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}

package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Middleware parses the Authorization bearer token and stores the principal
// in the request context. Requests without a valid token get 401.
func Middleware(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			principal, err := ParseToken(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				logger.Debug("token rejected", zap.Error(err))
				writeUnauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}

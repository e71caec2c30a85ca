package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
)

// RequireManager requires the manager role. It must run after AuthRequired.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if !identity.IsManager() {
			response.HandleError(w, auth.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the caller behind an access token.
type Identity struct {
	EmployeeID string
	Username   string
	Role       employee.Role
}

func (i Identity) IsManager() bool {
	return i.Role == employee.RoleManager
}

type identityKey struct{}

// IdentityFromContext returns the caller stored by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity stores id in ctx. Used by AuthRequired and tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// AuthRequired rejects requests without a verified access token. It must run
// after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)

		ctx := WithIdentity(r.Context(), Identity{
			EmployeeID: employeeID,
			Username:   username,
			Role:       employee.Role(role),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}

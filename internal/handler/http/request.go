package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
)

// queryPtr returns the query parameter, or nil when absent or empty.
func queryPtr(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string) (*bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: key + " must be true or false"}}
	}
	return &b, nil
}

func identity(r *http.Request) (middleware.Identity, error) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return middleware.Identity{}, auth.ErrInvalidToken
	}
	return id, nil
}

package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken(Claims{EmployeeID: "emp-1", Username: "jdoe", Role: "manager"})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "jdoe", claims["username"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, time.Hour)

	token, _, err := svc.GenerateRefreshToken("emp-1")
	require.NoError(t, err)

	employeeID, err := svc.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
}

func TestJWTService_ParseRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, time.Hour)

	token, _, err := svc.GenerateAccessToken(Claims{EmployeeID: "emp-1", Role: "employee"})
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(token)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_ParseRefreshToken_RejectsOtherSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Minute, time.Hour)
	verifier := NewJWTService("secret-b", time.Minute, time.Hour)

	token, _, err := issuer.GenerateRefreshToken("emp-1")
	require.NoError(t, err)

	_, err = verifier.ParseRefreshToken(token)
	assert.Error(t, err)
}

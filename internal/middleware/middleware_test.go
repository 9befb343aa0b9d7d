package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func authedRequest(t *testing.T, method jwt.SigningMethod, key interface{}) *http.Request {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{"sub": "staff-1"})
	signed, err := token.SignedString(key)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/triage/teams", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	return req
}

func runAuth(req *http.Request) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	RequireAuth(testSecret)(next).ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_AcceptsHS256(t *testing.T) {
	req := authedRequest(t, jwt.SigningMethodHS256, []byte(testSecret))
	assert.Equal(t, http.StatusOK, runAuth(req).Code)
}

func TestRequireAuth_RejectsUnexpectedAlgorithm(t *testing.T) {
	// HS384 verifies against the same secret, so only the algorithm
	// allow-list keeps it out.
	req := authedRequest(t, jwt.SigningMethodHS384, []byte(testSecret))
	assert.Equal(t, http.StatusUnauthorized, runAuth(req).Code)
}

func TestRequireAuth_RejectsUnsignedToken(t *testing.T) {
	req := authedRequest(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)
	assert.Equal(t, http.StatusUnauthorized, runAuth(req).Code)
}

func TestRequireAuth_RejectsMissingAndMalformedHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/triage/teams", nil)
	assert.Equal(t, http.StatusUnauthorized, runAuth(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/triage/teams", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, runAuth(req).Code)
}

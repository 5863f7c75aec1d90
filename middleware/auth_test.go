package middleware

import (
	"go-canteen/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, wantStudentID int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantStudentID, claims.StudentID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/order-history", nil)
	Authenticate(okHandler(t, 0)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
}

func TestAuthenticateBadHeaderFormat(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/order-history", nil)
	req.Header.Set("Authorization", "Basic abc123")
	Authenticate(okHandler(t, 0)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/order-history", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	Authenticate(okHandler(t, 0)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthenticateValidStudentToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateStudentToken(102)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/order-history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	Authenticate(RequireStudent(okHandler(t, 102))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireStudentRejectsAdminToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateAdminToken("gagan")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/place-order", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	Authenticate(RequireStudent(okHandler(t, 0))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	adminToken, err := utils.GenerateAdminToken("gagan")
	require.NoError(t, err)
	studentToken, err := utils.GenerateStudentToken(102)
	require.NoError(t, err)

	handler := Authenticate(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

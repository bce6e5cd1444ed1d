package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddlewareAuthenticate(t *testing.T) {
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	mw := NewAuthMiddleware(tokens)

	var gotUserID int32
	var gotRole domain.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := tokens.GenerateToken(5, "ops@example.com", "ADMIN")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/equipment", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int32(5), gotUserID)
		assert.Equal(t, domain.RoleAdmin, gotRole)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/equipment", nil)
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/equipment", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/equipment", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddlewareRequireAdmin(t *testing.T) {
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	mw := NewAuthMiddleware(tokens)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	chain := mw.Authenticate(mw.RequireAdmin(next))

	t.Run("admin role passes", func(t *testing.T) {
		token, _ := tokens.GenerateToken(5, "ops@example.com", "ADMIN")
		req := httptest.NewRequest(http.MethodDelete, "/api/equipment/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("user role is forbidden", func(t *testing.T) {
		token, _ := tokens.GenerateToken(6, "user@example.com", "USER")
		req := httptest.NewRequest(http.MethodDelete, "/api/equipment/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation maps to 400", domain.NewValidationError("bad input"), http.StatusBadRequest},
		{"conflict maps to 400", domain.NewConflictError("insufficient stock"), http.StatusBadRequest},
		{"not found maps to 404", domain.NewNotFoundError("equipment", 7), http.StatusNotFound},
		{"unknown maps to generic 500", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/equipment/7", nil)
			rec := httptest.NewRecorder()
			writeError(rec, req, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusInternalServerError {
				assert.Contains(t, rec.Body.String(), "internal server error")
				assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
			} else {
				assert.Contains(t, rec.Body.String(), tc.err.Error())
			}
		})
	}
}

func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/equipment", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

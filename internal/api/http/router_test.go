package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"equiprent-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

// Routes that mutate stock or delete records must reject non-admin tokens
// before the handler runs, so zero-value handlers are enough here.
func TestRouterAdminOnlyRoutes(t *testing.T) {
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	mw := NewAuthMiddleware(tokens)
	router := NewRouter(
		&EquipmentHandler{},
		&RentalHandler{},
		&MovementHandler{},
		&InventoryHandler{},
		&OrderHandler{},
		&ReferenceHandler{},
		&AuthHandler{},
		mw,
	)

	userToken, err := tokens.GenerateToken(7, "user@example.com", "USER")
	assert.NoError(t, err)

	adminOnly := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/inventory-checks/1/complete"},
		{http.MethodDelete, "/api/orders/1"},
		{http.MethodDelete, "/api/sales/1"},
		{http.MethodDelete, "/api/write-offs/1"},
		{http.MethodPost, "/api/users"},
	}
	for _, route := range adminOnly {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, strings.NewReader("{}"))
			req.Header.Set("Authorization", "Bearer "+userToken)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

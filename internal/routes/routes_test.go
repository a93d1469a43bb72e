package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/sales-management-golang/internal/auth"
	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/handlers"
	"github.com/01moynul/sales-management-golang/internal/managers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newApp(a *auth.Authenticator) *handlers.Handlers {
	conn := &database.Conn{}
	return &handlers.Handlers{DB: conn, Managers: managers.New(conn), Auth: a}
}

func do(r http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCORSPreflight(t *testing.T) {
	r := SetupRouter(newApp(nil), "http://localhost:5173")

	rr := do(r, http.MethodOptions, "/v1/customers", nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNoCORSHeadersWithoutOrigin(t *testing.T) {
	r := SetupRouter(newApp(nil), "")

	rr := do(r, http.MethodGet, "/v1/ping", nil)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestEveryRouteIsMounted(t *testing.T) {
	r := SetupRouter(newApp(nil), "")

	// Disconnected, so every manager-backed route answers 503 rather than 404.
	for _, target := range []string{
		"/v1/customers",
		"/v1/products",
		"/v1/products/1/discount?rate=10",
		"/v1/orders?customer=a",
		"/v1/orders/1/track",
		"/v1/order-details",
		"/v1/employees",
		"/v1/reports/sales?start=2024-01-01&end=2024-01-31",
		"/v1/reports/sales/daily?start=2024-01-01&end=2024-01-31",
		"/v1/reports/sales/today",
		"/v1/reports/sales/by-employee",
		"/v1/reports/sales/by-product",
		"/v1/reports/sales/by-customer",
		"/v1/reports/top/employees",
		"/v1/reports/top/products?n=3",
		"/v1/reports/top/customers",
	} {
		rr := do(r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, target)
	}
}

func TestLoginGuardsAPIAndPages(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	a := auth.New("test-secret", "admin", hash)
	r := SetupRouter(newApp(a), "")

	rr := do(r, http.MethodGet, "/v1/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(r, http.MethodGet, "/ui/customers/all", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	rr = do(r, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(r, http.MethodGet, "/v1/ping", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	token, err := a.GenerateToken("admin")
	require.NoError(t, err)
	rr = do(r, http.MethodGet, "/v1/customers", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

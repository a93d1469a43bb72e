package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/sales-management-golang/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(a *auth.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AuthMiddleware(a))
	r.GET("/v1/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/customers", func(c *gin.Context) { c.String(http.StatusOK, "page") })
	return r
}

func TestAuthDisabledLetsEverythingThrough(t *testing.T) {
	r := newRouter(nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestAuthRequiresToken(t *testing.T) {
	a := auth.New("secret", "admin", "")
	r := newRouter(a)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customers", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestAuthAcceptsBearerAndCookie(t *testing.T) {
	a := auth.New("secret", "admin", "")
	token, err := a.GenerateToken("admin")
	require.NoError(t, err)
	r := newRouter(a)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDIsReused(t *testing.T) {
	r := newRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

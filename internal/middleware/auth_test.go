package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbookings/internal/config"
	jwtsvc "hotelbookings/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	admin, err := config.NewAdminCredentials("admin", "secret123")
	require.NoError(t, err)

	jwt := jwtsvc.New("test-secret", time.Hour)

	r := gin.New()
	r.GET("/gated", RequireAdmin(admin, jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, jwt
}

func TestRequireAdminBasicAuth(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.SetBasicAuth("admin", "secret123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAdminRejectsBadCredentials(t *testing.T) {
	r, _ := setupAuthRouter(t)

	cases := []struct {
		name string
		user string
		pass string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "secret123"},
		{"both wrong", "root", "nope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/gated", nil)
			req.SetBasicAuth(tc.user, tc.pass)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestRequireAdminMissingCredentials(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAdminBearerToken(t *testing.T) {
	r, jwt := setupAuthRouter(t)

	token, err := jwt.GenerateToken("admin", jwtsvc.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAdminRejectsNonAdminRole(t *testing.T) {
	r, jwt := setupAuthRouter(t)

	token, err := jwt.GenerateToken("guest", "viewer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

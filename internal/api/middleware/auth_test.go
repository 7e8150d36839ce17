package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jamizoram/storefront/internal/domain"
)

func adminTestRouter(user *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) {
			if user != nil {
				c.Set(UserContextKey, user)
			}
			c.Next()
		},
		RequireAdmin(),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return router
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	router := adminTestRouter(&domain.User{ID: uuid.New(), Role: domain.RoleAdmin})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsShopper(t *testing.T) {
	// A shopper deep-linking into the back office gets a 403, not data
	router := adminTestRouter(&domain.User{ID: uuid.New(), Role: domain.RoleUser})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	router := adminTestRouter(nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartSessionIDPrefersBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	c.Request.Header.Set("Authorization", "Bearer signed-in-token")
	c.Request.Header.Set(CartSessionHeader, "anon-session")

	assert.Equal(t, "signed-in-token", CartSessionID(c))
}

func TestCartSessionIDFallsBackToHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	c.Request.Header.Set(CartSessionHeader, "  anon-session  ")

	assert.Equal(t, "anon-session", CartSessionID(c))
}

func TestCartSessionIDEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)

	assert.Equal(t, "", CartSessionID(c))
}

func TestBearerTokenParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer  abc123 ", "abc123"},
		{"bearer abc123", ""},
		{"Basic abc123", ""},
		{"", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, bearerToken(c), "header %q", tc.header)
	}
}

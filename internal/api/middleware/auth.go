package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/identity"
)

const (
	UserContextKey  = "user"
	TokenContextKey = "session_token"

	// CartSessionHeader carries a client-generated cart scope for shoppers
	// who have not signed in yet. Signed-in shoppers use their session token.
	CartSessionHeader = "X-Cart-Session"
)

// AuthMiddleware resolves the bearer session token to an identity and aborts
// with 401 when it cannot
func AuthMiddleware(ids *identity.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		user, err := ids.Current(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Failed to resolve session", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, user)
		c.Set(TokenContextKey, token)
		c.Next()
	}
}

// RequireAdmin gates admin routes. The role is checked on every request, not
// cached at navigation time, so a demoted or deep-linking shopper gets a 403
// rather than admin data.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if user.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated user from the Gin context
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

// GetSessionToken retrieves the raw session token from the Gin context
func GetSessionToken(c *gin.Context) string {
	return c.GetString(TokenContextKey)
}

// CartSessionID resolves the cart scope for a request: the session token
// when signed in, otherwise the client-generated cart header. Empty means
// the caller provided neither.
func CartSessionID(c *gin.Context) string {
	if token := bearerToken(c); token != "" {
		return token
	}
	return strings.TrimSpace(c.GetHeader(CartSessionHeader))
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

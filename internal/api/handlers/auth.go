package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api/middleware"
	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/identity"
	"github.com/jamizoram/storefront/pkg/errors"
)

// SignupRequest represents the public signup payload. There is deliberately
// no role field here; any role a client smuggles into the JSON body is
// discarded and the shopper role is hard-coded at the identity boundary.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the identity and its session token
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of an identity
type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// adoptAnonymousCart moves the cart built under the request's X-Cart-Session
// scope into the fresh bearer-token scope. Without this, signing in would
// strand whatever the shopper added before authenticating.
func adoptAnonymousCart(c *gin.Context, carts *cart.Manager, token string) {
	anon := strings.TrimSpace(c.GetHeader(middleware.CartSessionHeader))
	if anon == "" {
		return
	}
	carts.Adopt(c.Request.Context(), anon, token)
}

// HandleSignup handles POST /v1/auth/signup
func HandleSignup(ids *identity.Manager, carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		user, token, err := ids.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if _, ok := err.(*errors.ErrConflict); ok {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			if _, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to sign up user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		adoptAnonymousCart(c, carts, token)
		c.JSON(http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(ids *identity.Manager, carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		user, token, err := ids.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if _, ok := err.(*errors.ErrUnauthorized); ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			logger.Error("Failed to sign in user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		adoptAnonymousCart(c, carts, token)
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

// HandleLogout handles POST /v1/auth/logout
func HandleLogout(ids *identity.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.GetSessionToken(c)
		if err := ids.SignOut(c.Request.Context(), token); err != nil {
			logger.Error("Failed to sign out", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// HandleMe handles GET /v1/auth/me
func HandleMe(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// UpdateMeRequest represents the profile edit payload. Pointer fields so an
// omitted field is left untouched rather than blanked.
type UpdateMeRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// HandleUpdateMe handles PATCH /v1/auth/me. Shoppers edit their own name and
// contact details; role and email are never client-writable.
func HandleUpdateMe(ids *identity.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req UpdateMeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		updated, err := ids.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.Phone, req.Address)
		if err != nil {
			if _, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			logger.Error("Failed to update profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toUserResponse(updated))
	}
}

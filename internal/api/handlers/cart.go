package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api/middleware"
	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
	"github.com/jamizoram/storefront/pkg/errors"
)

// AddToCartRequest represents the add-to-cart payload. Size is required: the
// storefront must not enable the add control until a size is chosen.
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents a quantity-set payload
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// RemoveCartItemRequest represents a line removal payload
type RemoveCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

// CartResponse represents the cart snapshot returned after every operation
type CartResponse struct {
	Items    []domain.CartLine `json:"items"`
	Count    int               `json:"count"`
	Subtotal float64           `json:"subtotal"`
	Message  string            `json:"message,omitempty"`
}

func cartResponse(lines []domain.CartLine, message string) CartResponse {
	count := 0
	subtotal := 0.0
	for _, l := range lines {
		count += l.Quantity
		subtotal += l.Price * float64(l.Quantity)
	}
	return CartResponse{Items: lines, Count: count, Subtotal: subtotal, Message: message}
}

// cartScope resolves the per-browser cart key or rejects the request
func cartScope(c *gin.Context) (string, bool) {
	sessionID := middleware.CartSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "cart session required: send a bearer token or " + middleware.CartSessionHeader,
		})
		return "", false
	}
	return sessionID, true
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := cartScope(c)
		if !ok {
			return
		}
		lines := carts.Snapshot(c.Request.Context(), sessionID)
		c.JSON(http.StatusOK, cartResponse(lines, ""))
	}
}

// HandleAddToCart handles POST /v1/cart/items. Adding the same
// (product, size) again increments the existing line instead of duplicating
// it; the denormalized name, price and image are captured from the catalog at
// add-time.
func HandleAddToCart(repos *repository.Repositories, carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := cartScope(c)
		if !ok {
			return
		}

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to load product for cart add", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if !product.HasSize(req.Size) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": fmt.Sprintf("size %q is not available for %s", req.Size, product.Name),
			})
			return
		}

		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "quantity must be positive"})
			return
		}

		lines, merged := carts.AddItem(c.Request.Context(), sessionID, product, req.Size, quantity)
		message := fmt.Sprintf("%s (%s) added to cart", product.Name, req.Size)
		if merged {
			message = fmt.Sprintf("Increased quantity of %s in cart", product.Name)
		}
		c.JSON(http.StatusOK, cartResponse(lines, message))
	}
}

// HandleUpdateCartQuantity handles PATCH /v1/cart/items. A quantity below 1
// is a no-op: dropping a line is an explicit removal, never a decrement side
// effect.
func HandleUpdateCartQuantity(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := cartScope(c)
		if !ok {
			return
		}

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}

		lines, _ := carts.UpdateQuantity(c.Request.Context(), sessionID, productID, req.Size, req.Quantity)
		c.JSON(http.StatusOK, cartResponse(lines, ""))
	}
}

// HandleRemoveFromCart handles DELETE /v1/cart/items
func HandleRemoveFromCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := cartScope(c)
		if !ok {
			return
		}

		var req RemoveCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}

		lines, removed := carts.RemoveItem(c.Request.Context(), sessionID, productID, req.Size)
		message := ""
		if removed {
			message = "Item removed from cart"
		}
		c.JSON(http.StatusOK, cartResponse(lines, message))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := cartScope(c)
		if !ok {
			return
		}
		carts.Clear(c.Request.Context(), sessionID)
		c.JSON(http.StatusOK, cartResponse(nil, "Cart cleared"))
	}
}

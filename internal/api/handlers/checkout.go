package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api/middleware"
	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/repository"
	"github.com/jamizoram/storefront/internal/service"
	"github.com/jamizoram/storefront/pkg/errors"
)

// CheckoutRequest represents the checkout payload. PaymentConfirmed is the
// shopper's self-asserted "I have paid" acknowledgment - the system records
// it as a precondition but never verifies settlement.
type CheckoutRequest struct {
	ShippingAddress  string   `json:"shipping_address" binding:"required"`
	Phone            string   `json:"phone" binding:"required"`
	PaymentConfirmed bool     `json:"payment_confirmed"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// CheckoutResponse represents a placed order
type CheckoutResponse struct {
	OrderID     string  `json:"order_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
	Message     string  `json:"message"`
}

// HandleCheckout handles POST /v1/checkout. On success the cart is cleared;
// on any failure the cart is preserved unchanged so the shopper can retry.
func HandleCheckout(repos *repository.Repositories, carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if !req.PaymentConfirmed {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "confirm the payment acknowledgment before placing the order",
			})
			return
		}

		sessionID := middleware.GetSessionToken(c)
		checkout := service.NewCheckoutService(repos.Order, carts, logger)
		order, err := checkout.PlaceOrder(c.Request.Context(), sessionID, user, service.CheckoutInput{
			ShippingAddress: req.ShippingAddress,
			Phone:           req.Phone,
			Latitude:        req.Latitude,
			Longitude:       req.Longitude,
		})
		if err != nil {
			switch err.(type) {
			case *errors.ErrEmptyCart:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
			case *errors.ErrValidation:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to place order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Error placing order. Please try again.",
				})
			}
			return
		}

		c.JSON(http.StatusCreated, CheckoutResponse{
			OrderID:     order.ID,
			Status:      string(order.Status),
			TotalAmount: order.TotalAmount,
			ItemCount:   len(order.Items),
			Message:     "Order placed successfully! We'll contact you soon.",
		})
	}
}

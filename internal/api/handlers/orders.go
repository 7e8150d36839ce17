package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api/middleware"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
)

// OrderItemResponse is the stored item copy inside an order
type OrderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
	Size        string  `json:"size"`
}

// OrderResponse represents the order view shared by shopper and admin
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	UserName        string              `json:"user_name"`
	UserEmail       string              `json:"user_email"`
	UserPhone       string              `json:"user_phone,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     float64             `json:"total_amount"`
	Status          domain.OrderStatus  `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	Latitude        *float64            `json:"latitude,omitempty"`
	Longitude       *float64            `json:"longitude,omitempty"`
	CreatedAt       string              `json:"created_at"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Image:       item.Image,
			Size:        item.Size,
		}
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID.String(),
		UserName:        o.UserName,
		UserEmail:       o.UserEmail,
		UserPhone:       o.UserPhone,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		Latitude:        o.Latitude,
		Longitude:       o.Longitude,
		CreatedAt:       o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleMyOrders handles GET /v1/orders - the shopper's own order history,
// newest first
func HandleMyOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orders, err := repos.Order.ListByUserID(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list user orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		out := make([]OrderResponse, len(orders))
		for i, o := range orders {
			out[i] = toOrderResponse(o)
		}
		c.JSON(http.StatusOK, gin.H{"data": out})
	}
}

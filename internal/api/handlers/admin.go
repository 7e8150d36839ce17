package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/copywriter"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
	"github.com/jamizoram/storefront/internal/service"
	"github.com/jamizoram/storefront/pkg/errors"
)

// UpdateOrderStatusRequest represents a status change payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleListAllOrders handles GET /v1/admin/orders. Cancelled orders stay in
// the listing; only revenue excludes them.
func HandleListAllOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repos.Order.ListAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
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

// HandleUpdateOrderStatus handles PATCH /v1/admin/orders/:id/status. Any
// valid status may be set directly, forward or backward - the admin flow
// does not enforce transition adjacency.
func HandleUpdateOrderStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order id required"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		status := domain.OrderStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": (&errors.ErrInvalidStatus{Status: req.Status}).Error(),
			})
			return
		}

		if err := repos.Order.UpdateStatus(c.Request.Context(), id, status); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to update order status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
	}
}

// HandleDeleteOrder handles DELETE /v1/admin/orders/:id. Deletion removes
// the record entirely; cancellation (a status change) preserves it.
func HandleDeleteOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order id required"})
			return
		}

		if err := repos.Order.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to delete order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// HandleDashboardStats handles GET /v1/admin/stats
func HandleDashboardStats(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repos.Order.ListAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to load orders for stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, service.ComputeDashboard(orders))
	}
}

// ProductRequest represents an admin product create/update payload
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Team        string   `json:"team" binding:"required"`
	Price       float64  `json:"price" binding:"required,min=0"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Stock       int      `json:"stock" binding:"min=0"`
	Status      string   `json:"status" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Sizes       []string `json:"sizes" binding:"required,min=1"`
}

func (req *ProductRequest) toDomain() (*domain.Product, error) {
	status := domain.ProductStatus(req.Status)
	if !status.IsValid() {
		return nil, &errors.ErrValidation{Message: "invalid product status: " + req.Status}
	}
	category := domain.Category(req.Category)
	if !category.IsValid() {
		return nil, &errors.ErrValidation{Message: "invalid category: " + req.Category}
	}
	return &domain.Product{
		Name:        req.Name,
		Team:        req.Team,
		Price:       req.Price,
		Image:       req.Image,
		Images:      req.Images,
		Description: req.Description,
		Stock:       req.Stock,
		Status:      status,
		Category:    category,
		Sizes:       req.Sizes,
	}, nil
}

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		if err := repos.Product.Create(c.Request.Context(), product); err != nil {
			logger.Error("Failed to create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, toProductResponse(product))
	}
}

// HandleUpdateProduct handles PUT /v1/admin/products/:id
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		product.ID = id

		if err := repos.Product.Update(c.Request.Context(), product); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to update product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

// HandleDeleteProduct handles DELETE /v1/admin/products/:id
func HandleDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		if err := repos.Product.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to delete product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": id.String()})
	}
}

// GenerateDescriptionRequest represents a copywriting request
type GenerateDescriptionRequest struct {
	Team string `json:"team" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// HandleGenerateDescription handles POST /v1/admin/products/generate-description.
// Always returns copy - the client degrades to the fallback string on its own
// failures, so this endpoint never errors on upstream trouble.
func HandleGenerateDescription(copy *copywriter.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateDescriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		description := copy.GenerateProductDescription(c.Request.Context(), req.Team, req.Name)
		c.JSON(http.StatusOK, gin.H{"description": description})
	}
}

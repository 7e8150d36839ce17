package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api/middleware"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
	"github.com/jamizoram/storefront/internal/service"
	"github.com/jamizoram/storefront/pkg/errors"
)

// ProductResponse is the public catalog view of a product
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Team        string   `json:"team"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	// AverageRating is nil when the product has no reviews - "no rating" is
	// not the same as a zero rating
	AverageRating *float64 `json:"average_rating,omitempty"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Team:        p.Team,
		Price:       p.Price,
		Image:       p.Image,
		Images:      p.Images,
		Description: p.Description,
		Stock:       p.Stock,
		Status:      string(p.Status),
		Category:    string(p.Category),
		Sizes:       p.Sizes,
	}
}

// HandleListProducts handles GET /v1/catalog/products with optional
// category, team and search query filters (all must hold simultaneously)
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repos.Product.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		filter := service.ProductFilter{
			Category: c.Query("category"),
			Team:     c.Query("team"),
			Search:   c.Query("search"),
		}
		filtered := filter.Apply(products)

		out := make([]ProductResponse, len(filtered))
		for i, p := range filtered {
			out[i] = toProductResponse(p)
		}
		c.JSON(http.StatusOK, gin.H{"data": out, "meta": gin.H{"count": len(out)}})
	}
}

// HandleGetProduct handles GET /v1/catalog/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := toProductResponse(product)
		reviews, err := repos.Review.ListByProductID(c.Request.Context(), id)
		if err != nil {
			// Degrade to a product without a rating rather than failing the view
			logger.Warn("Failed to load reviews for product", zap.Error(err), zap.String("product_id", id.String()))
		} else if avg, ok := service.AverageRating(reviews, id); ok {
			resp.AverageRating = &avg
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ReviewResponse is the public view of a review
type ReviewResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// HandleListReviews handles GET /v1/catalog/products/:id/reviews
func HandleListReviews(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		reviews, err := repos.Review.ListByProductID(c.Request.Context(), id)
		if err != nil {
			logger.Error("Failed to list reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		out := make([]ReviewResponse, len(reviews))
		for i, r := range reviews {
			out[i] = ReviewResponse{
				ID:        r.ID.String(),
				ProductID: r.ProductID.String(),
				UserName:  r.UserName,
				Rating:    r.Rating,
				Comment:   r.Comment,
				CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}
		c.JSON(http.StatusOK, gin.H{"data": out})
	}
}

// CreateReviewRequest represents a new review payload
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// HandleCreateReview handles POST /v1/catalog/products/:id/reviews
func HandleCreateReview(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		// The product must exist before accepting a review for it
		if _, err := repos.Product.GetByID(c.Request.Context(), productID); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to verify product for review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		review := &domain.Review{
			ProductID: productID,
			UserID:    user.ID,
			UserName:  user.Name,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := repos.Review.Create(c.Request.Context(), review); err != nil {
			logger.Error("Failed to create review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": review.ID.String()})
	}
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api/handlers"
	"github.com/jamizoram/storefront/internal/api/middleware"
	"github.com/jamizoram/storefront/internal/assets"
	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/config"
	"github.com/jamizoram/storefront/internal/copywriter"
	"github.com/jamizoram/storefront/internal/identity"
	"github.com/jamizoram/storefront/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	carts *cart.Manager,
	ids *identity.Manager,
	uploader *assets.Uploader,
	copy *copywriter.Client,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Jersey Apparel Mizoram API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog/products",
				"POST /v1/cart/items",
				"POST /v1/checkout",
				"GET /v1/orders",
				"GET /v1/admin/orders",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded product images
	router.Static(cfg.Assets.PublicBase, cfg.Assets.Dir)

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public storefront routes
		v1.GET("/catalog/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/catalog/products/:id", handlers.HandleGetProduct(repos, logger))
		v1.GET("/catalog/products/:id/reviews", handlers.HandleListReviews(repos, logger))
		v1.GET("/hero-slides", handlers.HandleListHeroSlides(repos, logger))
		v1.GET("/settings", handlers.HandleGetSettings(repos, logger))
		v1.POST("/auth/signup", handlers.HandleSignup(ids, carts, logger))
		v1.POST("/auth/login", handlers.HandleLogin(ids, carts, logger))

		// Cart routes work for both signed-in shoppers (bearer token) and
		// anonymous ones (X-Cart-Session header)
		v1.GET("/cart", handlers.HandleGetCart(carts, logger))
		v1.POST("/cart/items", handlers.HandleAddToCart(repos, carts, logger))
		v1.PATCH("/cart/items", handlers.HandleUpdateCartQuantity(carts, logger))
		v1.DELETE("/cart/items", handlers.HandleRemoveFromCart(carts, logger))
		v1.DELETE("/cart", handlers.HandleClearCart(carts, logger))

		// Authenticated shopper routes
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(ids, logger))
		{
			authed.POST("/auth/logout", handlers.HandleLogout(ids, logger))
			authed.GET("/auth/me", handlers.HandleMe(logger))
			authed.PATCH("/auth/me", handlers.HandleUpdateMe(ids, logger))
			authed.POST("/checkout", handlers.HandleCheckout(repos, carts, logger))
			authed.GET("/orders", handlers.HandleMyOrders(repos, logger))
			authed.POST("/catalog/products/:id/reviews", handlers.HandleCreateReview(repos, logger))
		}

		// Admin back-office routes (role re-checked on every request)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(ids, logger))
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/orders", handlers.HandleListAllOrders(repos, logger))
			admin.PATCH("/orders/:id/status", handlers.HandleUpdateOrderStatus(repos, logger))
			admin.DELETE("/orders/:id", handlers.HandleDeleteOrder(repos, logger))
			admin.GET("/stats", handlers.HandleDashboardStats(repos, logger))

			admin.POST("/products", handlers.HandleCreateProduct(repos, logger))
			admin.PUT("/products/:id", handlers.HandleUpdateProduct(repos, logger))
			admin.DELETE("/products/:id", handlers.HandleDeleteProduct(repos, logger))
			admin.POST("/products/generate-description", handlers.HandleGenerateDescription(copy, logger))

			admin.POST("/hero-slides", handlers.HandleCreateHeroSlide(repos, logger))
			admin.PUT("/hero-slides/:id", handlers.HandleUpdateHeroSlide(repos, logger))
			admin.DELETE("/hero-slides/:id", handlers.HandleDeleteHeroSlide(repos, logger))

			admin.PUT("/settings", handlers.HandleUpdateSettings(repos, logger))
			admin.POST("/assets", handlers.HandleUploadAsset(uploader, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}

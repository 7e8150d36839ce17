package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/assets"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
	"github.com/jamizoram/storefront/pkg/errors"
)

// SettingsResponse is the public view of the site settings
type SettingsResponse struct {
	AboutUs         string  `json:"about_us"`
	InstagramHandle string  `json:"instagram_handle"`
	WhatsappNumber  string  `json:"whatsapp_number"`
	FooterTagline   string  `json:"footer_tagline"`
	PaymentQRCode   *string `json:"payment_qr_code,omitempty"`
	UPIID           *string `json:"upi_id,omitempty"`
	GPayNumber      *string `json:"gpay_number,omitempty"`
	PaytmNumber     *string `json:"paytm_number,omitempty"`
}

// HandleGetSettings handles GET /v1/settings. A store with no settings row
// yet degrades to empty defaults rather than an error.
func HandleGetSettings(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := repos.Settings.Get(c.Request.Context())
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusOK, SettingsResponse{})
				return
			}
			logger.Error("Failed to get site settings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, SettingsResponse{
			AboutUs:         settings.AboutUs,
			InstagramHandle: settings.InstagramHandle,
			WhatsappNumber:  settings.WhatsappNumber,
			FooterTagline:   settings.FooterTagline,
			PaymentQRCode:   settings.PaymentQRCode,
			UPIID:           settings.UPIID,
			GPayNumber:      settings.GPayNumber,
			PaytmNumber:     settings.PaytmNumber,
		})
	}
}

// UpdateSettingsRequest represents the admin settings payload
type UpdateSettingsRequest struct {
	AboutUs         string  `json:"about_us" binding:"required"`
	InstagramHandle string  `json:"instagram_handle" binding:"required"`
	WhatsappNumber  string  `json:"whatsapp_number" binding:"required"`
	FooterTagline   string  `json:"footer_tagline"`
	PaymentQRCode   *string `json:"payment_qr_code"`
	UPIID           *string `json:"upi_id"`
	GPayNumber      *string `json:"gpay_number"`
	PaytmNumber     *string `json:"paytm_number"`
}

// HandleUpdateSettings handles PUT /v1/admin/settings
func HandleUpdateSettings(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		settings := &domain.SiteSettings{
			AboutUs:         req.AboutUs,
			InstagramHandle: req.InstagramHandle,
			WhatsappNumber:  req.WhatsappNumber,
			FooterTagline:   req.FooterTagline,
			PaymentQRCode:   req.PaymentQRCode,
			UPIID:           req.UPIID,
			GPayNumber:      req.GPayNumber,
			PaytmNumber:     req.PaytmNumber,
		}
		// First-time saves all target the fixed singleton id so two racing
		// admins upsert into the same row; an existing row keeps its id.
		settings.ID = domain.SettingsID
		if existing, err := repos.Settings.Get(c.Request.Context()); err == nil {
			settings.ID = existing.ID
		}

		if err := repos.Settings.Upsert(c.Request.Context(), settings); err != nil {
			logger.Error("Failed to update site settings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Store configuration updated successfully."})
	}
}

// HeroSlideResponse is the public view of a hero slide
type HeroSlideResponse struct {
	ID           string `json:"id"`
	Badge        string `json:"badge"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ButtonText   string `json:"button_text"`
	AccentColor  string `json:"accent_color"`
	DisplayOrder int    `json:"display_order"`
}

func toHeroSlideResponse(s *domain.HeroSlide) HeroSlideResponse {
	return HeroSlideResponse{
		ID:           s.ID.String(),
		Badge:        s.Badge,
		Title:        s.Title,
		Description:  s.Description,
		ButtonText:   s.ButtonText,
		AccentColor:  s.AccentColor,
		DisplayOrder: s.DisplayOrder,
	}
}

// HandleListHeroSlides handles GET /v1/hero-slides, ordered for display
func HandleListHeroSlides(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slides, err := repos.HeroSlide.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list hero slides", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		out := make([]HeroSlideResponse, len(slides))
		for i, s := range slides {
			out[i] = toHeroSlideResponse(s)
		}
		c.JSON(http.StatusOK, gin.H{"data": out})
	}
}

// HeroSlideRequest represents an admin hero slide create/update payload
type HeroSlideRequest struct {
	Badge        string `json:"badge"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ButtonText   string `json:"button_text"`
	AccentColor  string `json:"accent_color"`
	DisplayOrder int    `json:"display_order"`
}

// HandleCreateHeroSlide handles POST /v1/admin/hero-slides
func HandleCreateHeroSlide(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HeroSlideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		slide := &domain.HeroSlide{
			Badge:        req.Badge,
			Title:        req.Title,
			Description:  req.Description,
			ButtonText:   req.ButtonText,
			AccentColor:  req.AccentColor,
			DisplayOrder: req.DisplayOrder,
		}
		if err := repos.HeroSlide.Create(c.Request.Context(), slide); err != nil {
			logger.Error("Failed to create hero slide", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, toHeroSlideResponse(slide))
	}
}

// HandleUpdateHeroSlide handles PUT /v1/admin/hero-slides/:id
func HandleUpdateHeroSlide(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hero slide id"})
			return
		}

		var req HeroSlideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		slide := &domain.HeroSlide{
			ID:           id,
			Badge:        req.Badge,
			Title:        req.Title,
			Description:  req.Description,
			ButtonText:   req.ButtonText,
			AccentColor:  req.AccentColor,
			DisplayOrder: req.DisplayOrder,
		}
		if err := repos.HeroSlide.Update(c.Request.Context(), slide); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "hero slide not found"})
				return
			}
			logger.Error("Failed to update hero slide", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toHeroSlideResponse(slide))
	}
}

// HandleDeleteHeroSlide handles DELETE /v1/admin/hero-slides/:id
func HandleDeleteHeroSlide(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hero slide id"})
			return
		}

		if err := repos.HeroSlide.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "hero slide not found"})
				return
			}
			logger.Error("Failed to delete hero slide", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": id.String()})
	}
}

// HandleUploadAsset handles POST /v1/admin/assets (multipart form, "file"
// field). Policy violations get their specific message; anything else is a
// generic failure.
func HandleUploadAsset(uploader *assets.Uploader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return
		}

		url, err := uploader.Save(header)
		if err != nil {
			if policyErr, ok := err.(*errors.ErrAssetPolicy); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": policyErr.Error()})
				return
			}
			logger.Error("Failed to store uploaded asset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}

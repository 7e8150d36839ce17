package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:   NewProductRepository(db, logger),
		Order:     NewOrderRepository(db, logger),
		Review:    NewReviewRepository(db, logger),
		HeroSlide: NewHeroSlideRepository(db, logger),
		Settings:  NewSettingsRepository(db, logger),
		User:      NewUserRepository(db, logger),
	}
}

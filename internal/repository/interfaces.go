package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jamizoram/storefront/internal/domain"
)

// ProductRepository defines catalog data access methods
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines order data access methods. Orders are created once
// and afterwards only the status may change or the row be deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines product review data access methods
type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
}

// HeroSlideRepository defines promotional banner data access methods
type HeroSlideRepository interface {
	List(ctx context.Context) ([]*domain.HeroSlide, error)
	Create(ctx context.Context, slide *domain.HeroSlide) error
	Update(ctx context.Context, slide *domain.HeroSlide) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository defines site settings data access methods (single row)
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Upsert(ctx context.Context, settings *domain.SiteSettings) error
}

// UserRepository defines user data access methods
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User, passwordHash string) error
	PasswordHash(ctx context.Context, email string) (string, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, address *string) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Product   ProductRepository
	Order     OrderRepository
	Review    ReviewRepository
	HeroSlide HeroSlideRepository
	Settings  SettingsRepository
	User      UserRepository
}

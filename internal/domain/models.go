package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered shopper or the store admin
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     *string
	Address   *string
	Role      UserRole
	CreatedAt time.Time
}

// Product is a catalog entry. Name and price are copied into cart lines and
// order items at add-time, so later edits never rewrite history.
type Product struct {
	ID          uuid.UUID
	Name        string
	Team        string
	Price       float64
	Image       string
	Images      []string
	Description string
	Stock       int
	Status      ProductStatus
	Category    Category
	Sizes       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasSize reports whether size is one of the product's available sizes.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// CartLine is one (product, size) entry in a shopping cart. The same product
// in two sizes is two independent lines.
type CartLine struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Image       string    `json:"image"`
	Size        string    `json:"size"`
}

// OrderItem is a frozen copy of a cart line at submission time. It shares the
// CartLine shape but is never a live reference to the cart.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Image       string    `json:"image"`
	Size        string    `json:"size"`
}

// Order is an immutable-after-creation record of a completed checkout. Only
// the status may change (admin), or the whole record may be deleted (admin).
type Order struct {
	ID              string
	UserID          uuid.UUID
	UserName        string
	UserEmail       string
	UserPhone       string
	Items           []OrderItem // stored as JSONB, one row per order
	TotalAmount     float64
	Status          OrderStatus
	ShippingAddress string
	Latitude        *float64
	Longitude       *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Review is a shopper rating and comment on a product
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// HeroSlide is a promotional banner on the storefront landing page
type HeroSlide struct {
	ID           uuid.UUID
	Badge        string
	Title        string
	Description  string
	ButtonText   string
	AccentColor  string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SettingsID identifies the single site_settings row. Every writer targets
// this id, so concurrent first-time saves collide on the key and upsert into
// one row instead of inserting two.
var SettingsID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// SiteSettings holds the store-wide configuration the admin edits: brand
// copy, social handles and payment instructions. A single row.
type SiteSettings struct {
	ID              uuid.UUID
	AboutUs         string
	InstagramHandle string
	WhatsappNumber  string
	FooterTagline   string
	PaymentQRCode   *string
	UPIID           *string
	GPayNumber      *string
	PaytmNumber     *string
	UpdatedAt       time.Time
}

package domain

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	// PENDING - new order, awaiting admin confirmation
	OrderStatusPending OrderStatus = "PENDING"
	// PROCESSING - order confirmed, being prepared
	OrderStatusProcessing OrderStatus = "PROCESSING"
	// SHIPPED - order handed to the courier
	OrderStatusShipped OrderStatus = "SHIPPED"
	// DELIVERED - order received by the customer (terminal)
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// CANCELLED - order cancelled; kept in listings but excluded from revenue (terminal)
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are expected.
// The admin endpoint deliberately does not enforce transition adjacency -
// any valid status may be set directly, forward or backward.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ProductStatus represents catalog availability
type ProductStatus string

const (
	ProductStatusAvailable    ProductStatus = "AVAILABLE"
	ProductStatusOnSale       ProductStatus = "ON_SALE"
	ProductStatusOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// IsValid checks if the product status is a known value
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusOnSale, ProductStatusOutOfStock, ProductStatusDiscontinued:
		return true
	default:
		return false
	}
}

// Category groups products by league
type Category string

const (
	CategoryPremierLeague Category = "PREMIER_LEAGUE"
	CategoryLaLiga        Category = "LA_LIGA"
	CategorySerieA        Category = "SERIE_A"
	CategoryInternational Category = "INTERNATIONAL"
	CategoryOther         Category = "OTHER"
)

// IsValid checks if the category is a known value
func (c Category) IsValid() bool {
	switch c {
	case CategoryPremierLeague, CategoryLaLiga, CategorySerieA, CategoryInternational, CategoryOther:
		return true
	default:
		return false
	}
}

// UserRole represents the actor's role
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

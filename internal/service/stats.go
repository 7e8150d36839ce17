package service

import (
	"github.com/google/uuid"

	"github.com/jamizoram/storefront/internal/domain"
)

// Dashboard holds the admin back-office aggregates. Derived from an
// already-fetched order list; no additional backend calls.
type Dashboard struct {
	Revenue    float64 `json:"revenue"`
	Pending    int     `json:"pending"`
	Delivered  int     `json:"delivered"`
	OrderCount int     `json:"order_count"`
}

// ComputeDashboard derives the admin stats. Cancelled orders stay visible in
// listings but never count toward revenue.
func ComputeDashboard(orders []*domain.Order) Dashboard {
	var d Dashboard
	for _, o := range orders {
		d.OrderCount++
		if o.Status != domain.OrderStatusCancelled {
			d.Revenue += o.TotalAmount
		}
		switch o.Status {
		case domain.OrderStatusPending:
			d.Pending++
		case domain.OrderStatusDelivered:
			d.Delivered++
		}
	}
	return d
}

// AverageRating computes the mean rating for a product. The second return is
// false when the product has no reviews - "no rating" is distinct from a
// zero rating and must not default to 0.
func AverageRating(reviews []*domain.Review, productID uuid.UUID) (float64, bool) {
	sum, count := 0, 0
	for _, r := range reviews {
		if r.ProductID != productID {
			continue
		}
		sum += r.Rating
		count++
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

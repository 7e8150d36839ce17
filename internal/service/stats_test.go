package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jamizoram/storefront/internal/domain"
)

func order(total float64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{ID: NewOrderID(), TotalAmount: total, Status: status}
}

func TestComputeDashboardExcludesCancelledRevenue(t *testing.T) {
	orders := []*domain.Order{
		order(100, domain.OrderStatusPending),
		order(200, domain.OrderStatusCancelled),
		order(50, domain.OrderStatusDelivered),
	}

	d := ComputeDashboard(orders)

	// The cancelled order stays in the count but not in revenue
	assert.Equal(t, 150.0, d.Revenue)
	assert.Equal(t, 3, d.OrderCount)
	assert.Equal(t, 1, d.Pending)
	assert.Equal(t, 1, d.Delivered)
}

func TestComputeDashboardEmpty(t *testing.T) {
	d := ComputeDashboard(nil)
	assert.Equal(t, 0.0, d.Revenue)
	assert.Equal(t, 0, d.OrderCount)
}

func TestComputeDashboardCountsStatuses(t *testing.T) {
	orders := []*domain.Order{
		order(10, domain.OrderStatusPending),
		order(10, domain.OrderStatusPending),
		order(10, domain.OrderStatusProcessing),
		order(10, domain.OrderStatusShipped),
		order(10, domain.OrderStatusDelivered),
	}

	d := ComputeDashboard(orders)
	assert.Equal(t, 2, d.Pending)
	assert.Equal(t, 1, d.Delivered)
	assert.Equal(t, 50.0, d.Revenue)
}

func TestAverageRating(t *testing.T) {
	productID := uuid.New()
	other := uuid.New()
	reviews := []*domain.Review{
		{ProductID: productID, Rating: 5},
		{ProductID: productID, Rating: 4},
		{ProductID: other, Rating: 1},
	}

	avg, ok := AverageRating(reviews, productID)
	assert.True(t, ok)
	assert.Equal(t, 4.5, avg)
}

func TestAverageRatingNoReviews(t *testing.T) {
	// No reviews means no rating, not a zero rating
	_, ok := AverageRating(nil, uuid.New())
	assert.False(t, ok)

	_, ok = AverageRating([]*domain.Review{{ProductID: uuid.New(), Rating: 5}}, uuid.New())
	assert.False(t, ok)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
	"github.com/jamizoram/storefront/pkg/errors"
)

type checkoutService struct {
	orders repository.OrderRepository
	carts  *cart.Manager
	logger *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(orders repository.OrderRepository, carts *cart.Manager, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		orders: orders,
		carts:  carts,
		logger: logger,
	}
}

// CheckoutInput carries the shipping details collected at checkout. Payment
// is a self-asserted acknowledgment gated by the handler, never verified
// here.
type CheckoutInput struct {
	ShippingAddress string
	Phone           string
	Latitude        *float64
	Longitude       *float64
}

// PlaceOrder converts the session's cart snapshot into a durable order.
//
// The total is always recomputed from the snapshot, never taken from the
// client. The order row carries a frozen value copy of the lines, so later
// cart mutations or catalog price changes never alter it. The cart is
// cleared only after the order is durably created; on any failure the cart
// is preserved unchanged so the shopper can retry.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID string, user *domain.User, in CheckoutInput) (*domain.Order, error) {
	if user == nil {
		return nil, &errors.ErrUnauthorized{Message: "sign in to place an order"}
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, &errors.ErrValidation{Message: "shipping address is required", Fields: map[string]string{"shipping_address": "required"}}
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, &errors.ErrValidation{Message: "delivery phone is required", Fields: map[string]string{"phone": "required"}}
	}

	snapshot := s.carts.Snapshot(ctx, sessionID)
	if len(snapshot) == 0 {
		return nil, &errors.ErrEmptyCart{}
	}

	items := make([]domain.OrderItem, len(snapshot))
	total := 0.0
	for i, line := range snapshot {
		items[i] = domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Price:       line.Price,
			Quantity:    line.Quantity,
			Image:       line.Image,
			Size:        line.Size,
		}
		total += line.Price * float64(line.Quantity)
	}

	order := &domain.Order{
		ID:              NewOrderID(),
		UserID:          user.ID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		UserPhone:       in.Phone,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		CreatedAt:       time.Now(),
	}

	s.logger.Info("Placing order",
		zap.String("order_id", order.ID),
		zap.String("user_id", user.ID.String()),
		zap.Int("line_count", len(items)),
		zap.Float64("total", total))

	if err := s.orders.Create(ctx, order); err != nil {
		// Cart untouched - the shopper keeps everything and can retry
		s.logger.Error("Failed to place order, cart preserved",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return nil, err
	}

	s.carts.Clear(ctx, sessionID)
	s.logger.Info("Order placed", zap.String("order_id", order.ID))
	return order, nil
}

// NewOrderID generates an order id from the submission time plus a random
// suffix. Purely sequential ids would collide under concurrent checkouts.
func NewOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

package service

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/pkg/errors"
)

// fakeOrderRepo records created orders and can be told to fail
type fakeOrderRepo struct {
	created   []*domain.Order
	createErr error
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return nil, &errors.ErrNotFound{Resource: "order", ID: id}
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return f.created, nil
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return f.created, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func testShopper() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Lal Shopper",
		Email: "shopper@example.com",
		Role:  domain.RoleUser,
	}
}

func cartWithLines(t *testing.T, sessionID string) *cart.Manager {
	t.Helper()
	m := cart.NewManager(cart.NewMemoryStore(), nil)
	p := &domain.Product{ID: uuid.New(), Name: "Premier Jersey", Price: 1200, Image: "/static/p.jpg"}
	m.AddItem(context.Background(), sessionID, p, "M", 2)
	return m
}

func TestPlaceOrderHappyPath(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOrderRepo{}
	carts := cartWithLines(t, "sess-1")
	svc := NewCheckoutService(repo, carts, zap.NewNop())

	order, err := svc.PlaceOrder(ctx, "sess-1", testShopper(), CheckoutInput{
		ShippingAddress: "Zarkawt, Aizawl",
		Phone:           "+91 90000 00000",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	// Total recomputed from the snapshot, never from the client
	assert.Equal(t, 2400.0, order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Cart cleared only after the order is durable
	assert.Empty(t, carts.Snapshot(ctx, "sess-1"))
}

func TestPlaceOrderPreservesCartOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOrderRepo{createErr: stderrors.New("db down")}
	carts := cartWithLines(t, "sess-1")
	svc := NewCheckoutService(repo, carts, zap.NewNop())

	_, err := svc.PlaceOrder(ctx, "sess-1", testShopper(), CheckoutInput{
		ShippingAddress: "Zarkawt, Aizawl",
		Phone:           "+91 90000 00000",
	})
	require.Error(t, err)

	// The shopper keeps everything and can retry
	snap := carts.Snapshot(ctx, "sess-1")
	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].Quantity)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOrderRepo{}
	carts := cart.NewManager(cart.NewMemoryStore(), nil)
	svc := NewCheckoutService(repo, carts, zap.NewNop())

	_, err := svc.PlaceOrder(ctx, "sess-1", testShopper(), CheckoutInput{
		ShippingAddress: "Zarkawt, Aizawl",
		Phone:           "+91 90000 00000",
	})
	var emptyCart *errors.ErrEmptyCart
	require.ErrorAs(t, err, &emptyCart)
	assert.Empty(t, repo.created)
}

func TestPlaceOrderValidation(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOrderRepo{}
	carts := cartWithLines(t, "sess-1")
	svc := NewCheckoutService(repo, carts, zap.NewNop())

	_, err := svc.PlaceOrder(ctx, "sess-1", testShopper(), CheckoutInput{Phone: "+91 90000 00000"})
	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)

	_, err = svc.PlaceOrder(ctx, "sess-1", testShopper(), CheckoutInput{ShippingAddress: "Zarkawt"})
	require.ErrorAs(t, err, &validation)

	_, err = svc.PlaceOrder(ctx, "sess-1", nil, CheckoutInput{ShippingAddress: "Zarkawt", Phone: "1"})
	var unauthorized *errors.ErrUnauthorized
	require.ErrorAs(t, err, &unauthorized)

	// Nothing created, cart untouched
	assert.Empty(t, repo.created)
	assert.Len(t, carts.Snapshot(ctx, "sess-1"), 1)
}

func TestPlaceOrderItemsAreFrozen(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOrderRepo{}
	carts := cart.NewManager(cart.NewMemoryStore(), nil)
	p := &domain.Product{ID: uuid.New(), Name: "Premier Jersey", Price: 1200}
	carts.AddItem(ctx, "sess-1", p, "M", 1)
	svc := NewCheckoutService(repo, carts, zap.NewNop())

	order, err := svc.PlaceOrder(ctx, "sess-1", testShopper(), CheckoutInput{
		ShippingAddress: "Zarkawt, Aizawl",
		Phone:           "+91 90000 00000",
	})
	require.NoError(t, err)

	// Re-adding to the (now empty) cart never reaches into the placed order
	carts.AddItem(ctx, "sess-1", p, "M", 50)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 1200.0, order.TotalAmount)
}

func TestNewOrderIDFormat(t *testing.T) {
	id := NewOrderID()
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d+-[0-9A-F]{8}$`), id)

	// Random suffix keeps concurrent checkouts from colliding
	assert.NotEqual(t, id, NewOrderID())
}

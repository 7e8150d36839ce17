package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api/middleware"
	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
	apperrors "github.com/jamizoram/storefront/pkg/errors"
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
	return nil, &apperrors.ErrNotFound{Resource: "order", ID: id}
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

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error { return nil }

const checkoutToken = "session-token-1"

// injectUser simulates AuthMiddleware for tests
func injectUser(user *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, user)
		c.Set(middleware.TokenContextKey, checkoutToken)
		c.Next()
	}
}

func checkoutTestRouter(t *testing.T, orderRepo *fakeOrderRepo) (*gin.Engine, *cart.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	shopper := &domain.User{
		ID:    uuid.New(),
		Name:  "Lal Shopper",
		Email: "shopper@example.com",
		Role:  domain.RoleUser,
	}
	repos := &repository.Repositories{Order: orderRepo}
	carts := cart.NewManager(cart.NewMemoryStore(), nil)

	router := gin.New()
	router.POST("/checkout", injectUser(shopper), HandleCheckout(repos, carts, zap.NewNop()))
	return router, carts
}

func fillCart(t *testing.T, carts *cart.Manager) {
	t.Helper()
	p := &domain.Product{ID: uuid.New(), Name: "Premier Jersey", Price: 1200}
	carts.AddItem(context.Background(), checkoutToken, p, "M", 2)
}

func postCheckout(t *testing.T, router *gin.Engine, body CheckoutRequest) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	repo := &fakeOrderRepo{}
	router, carts := checkoutTestRouter(t, repo)
	fillCart(t, carts)

	w := postCheckout(t, router, CheckoutRequest{
		ShippingAddress:  "Zarkawt, Aizawl",
		Phone:            "+91 90000 00000",
		PaymentConfirmed: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2400.0, resp.TotalAmount)
	assert.Equal(t, string(domain.OrderStatusPending), resp.Status)
	assert.Equal(t, 1, resp.ItemCount)

	require.Len(t, repo.created, 1)
	assert.Empty(t, carts.Snapshot(context.Background(), checkoutToken))
}

func TestCheckoutRequiresPaymentAcknowledgment(t *testing.T) {
	repo := &fakeOrderRepo{}
	router, carts := checkoutTestRouter(t, repo)
	fillCart(t, carts)

	w := postCheckout(t, router, CheckoutRequest{
		ShippingAddress: "Zarkawt, Aizawl",
		Phone:           "+91 90000 00000",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, repo.created)
	assert.Len(t, carts.Snapshot(context.Background(), checkoutToken), 1)
}

func TestCheckoutEmptyCart(t *testing.T) {
	router, _ := checkoutTestRouter(t, &fakeOrderRepo{})

	w := postCheckout(t, router, CheckoutRequest{
		ShippingAddress:  "Zarkawt, Aizawl",
		Phone:            "+91 90000 00000",
		PaymentConfirmed: true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckoutFailurePreservesCart(t *testing.T) {
	repo := &fakeOrderRepo{createErr: stderrors.New("db down")}
	router, carts := checkoutTestRouter(t, repo)
	fillCart(t, carts)

	w := postCheckout(t, router, CheckoutRequest{
		ShippingAddress:  "Zarkawt, Aizawl",
		Phone:            "+91 90000 00000",
		PaymentConfirmed: true,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The shopper keeps the cart and can retry
	snap := carts.Snapshot(context.Background(), checkoutToken)
	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].Quantity)
}

func TestCheckoutRequiresShippingFields(t *testing.T) {
	repo := &fakeOrderRepo{}
	router, carts := checkoutTestRouter(t, repo)
	fillCart(t, carts)

	w := postCheckout(t, router, CheckoutRequest{PaymentConfirmed: true})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, repo.created)
}

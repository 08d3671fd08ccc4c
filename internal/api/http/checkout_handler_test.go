package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/security"
)

// stubCheckoutService returns canned values; handler tests only exercise the
// HTTP mapping, the checkout semantics are covered in the service package.
type stubCheckoutService struct {
	draft   *domain.DraftOrder
	summary *domain.OrderSummary
	order   *domain.Order
	err     error
}

func (s *stubCheckoutService) GetDraft(ctx context.Context, customerID int32) (*domain.DraftOrder, *domain.OrderSummary, error) {
	return s.draft, s.summary, s.err
}
func (s *stubCheckoutService) AddRentalItem(ctx context.Context, customerID int32, item domain.RentalItem) (*domain.DraftOrder, *domain.OrderSummary, error) {
	return s.draft, s.summary, s.err
}
func (s *stubCheckoutService) AddServiceItem(ctx context.Context, customerID int32, item domain.ServiceItem) (*domain.DraftOrder, *domain.OrderSummary, error) {
	return s.draft, s.summary, s.err
}
func (s *stubCheckoutService) RemoveItem(ctx context.Context, customerID int32, itemID string) (*domain.DraftOrder, *domain.OrderSummary, error) {
	return s.draft, s.summary, s.err
}
func (s *stubCheckoutService) UpdateRentalDates(ctx context.Context, customerID int32, startDate, endDate string) (*domain.DraftOrder, *domain.OrderSummary, error) {
	return s.draft, s.summary, s.err
}
func (s *stubCheckoutService) Submit(ctx context.Context, customerID int32, email, name, paymentMethodID string) (*domain.Order, error) {
	return s.order, s.err
}

type stubOrderService struct {
	orders []domain.Order
	order  *domain.Order
	err    error
}

func (s *stubOrderService) ListOrders(ctx context.Context, customerID, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orders, int32(len(s.orders)), s.err
}
func (s *stubOrderService) GetOrder(ctx context.Context, customerID, orderID int32) (*domain.Order, error) {
	return s.order, s.err
}

func testRouter(t *testing.T, checkoutSvc *stubCheckoutService, orderSvc *stubOrderService) (*httptest.Server, string) {
	t.Helper()
	tokenManager := security.NewTokenManager("test-secret")
	token, err := tokenManager.GenerateAccessToken(42, "a@b.c", "Ada")
	require.NoError(t, err)

	router := NewRouter(NewCheckoutHandler(checkoutSvc), NewOrderHandler(orderSvc), tokenManager)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, token
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCheckoutEndpoints(t *testing.T) {
	draft := &domain.DraftOrder{ID: 7, CustomerID: 42, Status: domain.DraftStatusBuilding}
	summary := &domain.OrderSummary{Currency: "USD"}

	t.Run("Requires a bearer token", func(t *testing.T) {
		srv, _ := testRouter(t, &stubCheckoutService{draft: draft, summary: summary}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodGet, "/api/v1/cart", "", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("GET cart returns draft plus summary", func(t *testing.T) {
		srv, token := testRouter(t, &stubCheckoutService{draft: draft, summary: summary}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodGet, "/api/v1/cart", token, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body draftResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int32(7), body.Draft.ID)
		assert.Equal(t, "USD", body.Summary.Currency)
	})

	t.Run("Empty cart submission maps to 422", func(t *testing.T) {
		srv, token := testRouter(t, &stubCheckoutService{err: domain.ErrEmptyDraft}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/submit", token, `{"payment_method_id":"pm_123"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("In-flight submission maps to 409", func(t *testing.T) {
		srv, token := testRouter(t, &stubCheckoutService{err: domain.ErrSubmissionInFlight}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/submit", token, `{"payment_method_id":"pm_123"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Declined payment maps to 402", func(t *testing.T) {
		srv, token := testRouter(t, &stubCheckoutService{err: domain.ErrPaymentDeclined}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/submit", token, `{"payment_method_id":"pm_123"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	})

	t.Run("Submission without a payment method is a 400", func(t *testing.T) {
		srv, token := testRouter(t, &stubCheckoutService{}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/submit", token, `{}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Successful submission returns the confirmed order", func(t *testing.T) {
		order := &domain.Order{ID: 11, OrderNumber: "ord-1", Status: domain.OrderStatusConfirmed}
		srv, token := testRouter(t, &stubCheckoutService{order: order}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/submit", token, `{"payment_method_id":"pm_123"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "ord-1", got.OrderNumber)
	})

	t.Run("Unknown line removal maps to 404", func(t *testing.T) {
		srv, token := testRouter(t, &stubCheckoutService{err: domain.ErrItemNotFound}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodDelete, "/api/v1/cart/items/nope", token, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Order listing", func(t *testing.T) {
		orders := []domain.Order{{ID: 11, OrderNumber: "ord-1"}}
		srv, token := testRouter(t, &stubCheckoutService{}, &stubOrderService{orders: orders})
		resp := doRequest(t, srv, http.MethodGet, "/api/v1/orders", token, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body orderListResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Orders, 1)
		assert.Equal(t, int32(1), body.Total)
	})

	t.Run("Health endpoint needs no auth", func(t *testing.T) {
		srv, _ := testRouter(t, &stubCheckoutService{}, &stubOrderService{})
		resp := doRequest(t, srv, http.MethodGet, "/healthz", "", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dresscircle-checkout/internal/security"
)

// NewRouter wires the checkout API. All /api/v1 routes require a valid
// customer token; /healthz and /metrics do not.
func NewRouter(checkout *CheckoutHandler, orders *OrderHandler, tokenManager security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokenManager))

	api.HandleFunc("/cart", checkout.GetDraft).Methods(http.MethodGet)
	api.HandleFunc("/cart/items", checkout.AddRentalItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/services", checkout.AddServiceItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{itemID}", checkout.RemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/cart/dates", checkout.UpdateRentalDates).Methods(http.MethodPatch)
	api.HandleFunc("/checkout/submit", checkout.Submit).Methods(http.MethodPost)

	api.HandleFunc("/orders", orders.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderID}", orders.GetOrder).Methods(http.MethodGet)

	return r
}

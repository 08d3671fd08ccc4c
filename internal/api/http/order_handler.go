package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/service"
)

// OrderHandler serves confirmed order history.
type OrderHandler struct {
	orderSvc service.OrderService
}

func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

type orderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Total  int32          `json:"total"`
	Page   int32          `json:"page"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	page := int32(1)
	pageSize := int32(20)
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = int32(n)
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			pageSize = int32(n)
		}
	}

	orders, total, err := h.orderSvc.ListOrders(r.Context(), claims.CustomerID, page, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orderListResponse{Orders: orders, Total: total, Page: page})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	orderID, err := strconv.Atoi(mux.Vars(r)["orderID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderSvc.GetOrder(r.Context(), claims.CustomerID, int32(orderID))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

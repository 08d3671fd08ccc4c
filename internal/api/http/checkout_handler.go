package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/service"
)

// CheckoutHandler serves the cart and submission endpoints the checkout
// screens talk to.
type CheckoutHandler struct {
	checkoutSvc service.CheckoutService
}

func NewCheckoutHandler(checkoutSvc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

// draftResponse is what every cart mutation returns: the new draft state and
// the freshly recomputed summary, so screens never do their own math.
type draftResponse struct {
	Draft   *domain.DraftOrder   `json:"draft"`
	Summary *domain.OrderSummary `json:"summary"`
}

func (h *CheckoutHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	draft, summary, err := h.checkoutSvc.GetDraft(r.Context(), claims.CustomerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: summary})
}

func (h *CheckoutHandler) AddRentalItem(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var item domain.RentalItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, summary, err := h.checkoutSvc.AddRentalItem(r.Context(), claims.CustomerID, item)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: summary})
}

func (h *CheckoutHandler) AddServiceItem(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var item domain.ServiceItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.ServiceID == "" {
		respondError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	draft, summary, err := h.checkoutSvc.AddServiceItem(r.Context(), claims.CustomerID, item)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: summary})
}

func (h *CheckoutHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	itemID := mux.Vars(r)["itemID"]

	draft, summary, err := h.checkoutSvc.RemoveItem(r.Context(), claims.CustomerID, itemID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: summary})
}

type updateDatesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *CheckoutHandler) UpdateRentalDates(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req updateDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, summary, err := h.checkoutSvc.UpdateRentalDates(r.Context(), claims.CustomerID, req.StartDate, req.EndDate)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: summary})
}

type submitRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PaymentMethodID == "" {
		respondError(w, http.StatusBadRequest, "payment_method_id is required")
		return
	}

	order, err := h.checkoutSvc.Submit(r.Context(), claims.CustomerID, claims.Email, claims.Name, req.PaymentMethodID)
	if err != nil {
		RecordSubmission(false)
		respondDomainError(w, err)
		return
	}

	RecordSubmission(true)
	respondJSON(w, http.StatusCreated, order)
}

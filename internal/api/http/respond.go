package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"dresscircle-checkout/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
// Empty-cart and in-flight conditions are recoverable client states, not
// server failures.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyDraft):
		respondError(w, http.StatusUnprocessableEntity, "your cart is empty")
	case errors.Is(err, domain.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, "a payment attempt is already in progress")
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidDateRange):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPaymentDeclined):
		respondError(w, http.StatusPaymentRequired, "payment was declined, please try again")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

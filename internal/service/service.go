package service

import (
	"context"

	"dresscircle-checkout/internal/domain"
)

// CheckoutService owns the draft order and every piece of order-summary
// arithmetic. Screens never compute subtotals, tax, shipping or deposits
// themselves; they call this service and render what it returns.
type CheckoutService interface {
	GetDraft(ctx context.Context, customerID int32) (*domain.DraftOrder, *domain.OrderSummary, error)
	AddRentalItem(ctx context.Context, customerID int32, item domain.RentalItem) (*domain.DraftOrder, *domain.OrderSummary, error)
	AddServiceItem(ctx context.Context, customerID int32, item domain.ServiceItem) (*domain.DraftOrder, *domain.OrderSummary, error)
	RemoveItem(ctx context.Context, customerID int32, itemID string) (*domain.DraftOrder, *domain.OrderSummary, error)
	UpdateRentalDates(ctx context.Context, customerID int32, startDate, endDate string) (*domain.DraftOrder, *domain.OrderSummary, error)

	// Submit collects the initial deposit for the current draft and turns it
	// into a confirmed order. The summary is re-derived from the live draft
	// inside Submit; a summary computed before the latest edit is never
	// charged. At most one submission per draft is in flight at a time.
	Submit(ctx context.Context, customerID int32, email, name, paymentMethodID string) (*domain.Order, error)
}

// OrderService exposes confirmed order history.
type OrderService interface {
	ListOrders(ctx context.Context, customerID, page, pageSize int32) ([]domain.Order, int32, error)
	GetOrder(ctx context.Context, customerID, orderID int32) (*domain.Order, error)
}

// EmailService sends customer-facing checkout mail.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error
	SendRemainingPaymentReminder(ctx context.Context, email, name string, order *domain.Order) error
}

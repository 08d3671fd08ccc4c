package repository

import (
	"context"
	"time"

	"dresscircle-checkout/internal/domain"
)

// DraftOrderRepository persists the per-customer draft order. It is the only
// code in the system allowed to serialize or deserialize the stored item
// lists; every screen-facing operation goes through it via the checkout
// service.
type DraftOrderRepository interface {
	Create(ctx context.Context, draft *domain.DraftOrder) error
	GetByCustomer(ctx context.Context, customerID int32) (*domain.DraftOrder, error)
	SaveItems(ctx context.Context, draft *domain.DraftOrder) error

	// BeginSubmission atomically moves a BUILDING draft to SUBMITTING.
	// Returns domain.ErrSubmissionInFlight if the draft is not in BUILDING,
	// which enforces at most one in-flight payment attempt per draft.
	BeginSubmission(ctx context.Context, draftID int32) error
	// EndSubmission returns a SUBMITTING draft to BUILDING after a failed
	// payment attempt, leaving the item lists untouched.
	EndSubmission(ctx context.Context, draftID int32) error
	// Delete removes the draft entirely. Called exactly once, after the
	// deposit payment is confirmed.
	Delete(ctx context.Context, draftID int32) error

	// Housekeeping for the cron jobs.
	DeleteStale(ctx context.Context, updatedBefore time.Time) (int64, error)
	ReleaseStuck(ctx context.Context, submittingSince time.Time) (int64, error)
}

// OrderRepository persists confirmed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, customerID, orderID int32) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID, page, pageSize int32) ([]domain.Order, int32, error)
	UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus) error

	// ListDueForReminder returns confirmed orders whose rental window starts
	// on or before the given date and that have not been reminded about the
	// remaining payment yet.
	ListDueForReminder(ctx context.Context, startsOnOrBefore string) ([]domain.Order, error)
	MarkReminderSent(ctx context.Context, orderID int32) error
}

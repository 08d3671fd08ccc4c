package domain

import "errors"

var (
	// ErrEmptyDraft is returned when a checkout step that requires items runs
	// against an empty draft order. It surfaces as a recoverable "your cart
	// is empty" state, not a failure.
	ErrEmptyDraft = errors.New("draft order is empty")

	// ErrSubmissionInFlight is returned when a second submission is attempted
	// while one payment attempt is already in flight for the same draft.
	ErrSubmissionInFlight = errors.New("a submission is already in flight for this draft order")

	// ErrItemNotFound is returned when a line-item reference does not exist
	// in the draft order.
	ErrItemNotFound = errors.New("line item not found in draft order")

	// ErrDraftNotFound is returned by the repository when the customer has no
	// persisted draft order yet.
	ErrDraftNotFound = errors.New("draft order not found")

	// ErrOrderNotFound is returned when a confirmed order does not exist or
	// belongs to another customer.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidDateRange is returned at the service boundary when a rental
	// window has an unparseable date or ends before it starts.
	ErrInvalidDateRange = errors.New("invalid rental date range")

	// ErrPaymentDeclined wraps gateway failures during deposit collection.
	// The draft order is preserved unchanged so the customer can retry.
	ErrPaymentDeclined = errors.New("payment declined")
)

package payment

import "context"

// ChargeRequest asks the gateway to collect the initial deposit for an order
// being submitted. The amount is always re-derived from the live draft at
// submission time, never taken from a summary computed before the last edit.
type ChargeRequest struct {
	AmountCents     int64
	Currency        string
	PaymentMethodID string
	CustomerID      int32
	OrderNumber     string
}

type ChargeResult struct {
	PaymentIntentID string
	Status          string
}

// Gateway is the payment collaborator for deposit collection.
type Gateway interface {
	ChargeDeposit(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

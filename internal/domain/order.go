package domain

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "PENDING"
	OrderStatusConfirmed   OrderStatus = "CONFIRMED"
	OrderStatusCancelled   OrderStatus = "CANCELLED"
	OrderStatusDelivered   OrderStatus = "DELIVERED"
	OrderStatusReturned    OrderStatus = "RETURNED"
	OrderStatusUnderReview OrderStatus = "UNDER_REVIEW"
)

// OrderSummary is the derived money breakdown for a draft or confirmed order.
// All amounts are cents in a single currency. The deposit is half of the
// total; the remaining payment is derived by subtraction so the two halves
// always sum exactly to the total.
type OrderSummary struct {
	SubtotalCents         int64  `json:"subtotal_cents"`
	TaxCents              int64  `json:"tax_cents"`
	ShippingCents         int64  `json:"shipping_cents"`
	TotalCents            int64  `json:"total_cents"`
	InitialDepositCents   int64  `json:"initial_deposit_cents"`
	RemainingPaymentCents int64  `json:"remaining_payment_cents"`
	Currency              string `json:"currency"`
	RentalDays            int32  `json:"rental_days"`
}

// Order is the confirmed, immutable snapshot created from a draft order at
// the moment the deposit payment succeeds.
type Order struct {
	ID               int32         `json:"id"`
	OrderNumber      string        `json:"order_number"`
	CustomerID       int32         `json:"customer_id"`
	CustomerEmail    string        `json:"customer_email,omitempty"`
	CustomerName     string        `json:"customer_name,omitempty"`
	Items            []RentalItem  `json:"items"`
	PhotographyItems []ServiceItem `json:"photography_items"`
	Summary          OrderSummary  `json:"summary"`
	Status           OrderStatus   `json:"status"`
	PaymentIntentID  string        `json:"payment_intent_id,omitempty"`
	CreatedOn        string        `json:"created_on"`
	UpdatedOn        string        `json:"updated_on"`
}

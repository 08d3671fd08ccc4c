package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/logger"
)

type stripeGateway struct{}

// NewStripeGateway configures the Stripe client with the given secret key.
func NewStripeGateway(apiKey string) Gateway {
	stripe.Key = apiKey
	return &stripeGateway{}
}

func (g *stripeGateway) ChargeDeposit(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	logger.ExternalServiceCall("stripe", "ChargeDeposit",
		"order_number", req.OrderNumber, "amount_cents", req.AmountCents)

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
		Metadata: map[string]string{
			"order_number": req.OrderNumber,
			"customer_id":  fmt.Sprintf("%d", req.CustomerID),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		logger.ExternalServiceResult("stripe", "ChargeDeposit", err, "order_number", req.OrderNumber)
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentDeclined, err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		logger.ExternalServiceResult("stripe", "ChargeDeposit", nil,
			"order_number", req.OrderNumber, "intent_status", pi.Status)
		return nil, fmt.Errorf("%w: payment intent status %s", domain.ErrPaymentDeclined, pi.Status)
	}

	logger.ExternalServiceResult("stripe", "ChargeDeposit", nil,
		"order_number", req.OrderNumber, "payment_intent_id", pi.ID)
	return &ChargeResult{PaymentIntentID: pi.ID, Status: string(pi.Status)}, nil
}

package http

import (
	"context"

	"dresscircle-checkout/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "customer_claims"

// withClaims attaches validated customer claims to the request context.
func withClaims(ctx context.Context, claims *security.CustomerClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// claimsFromContext returns the authenticated customer's claims, or nil when
// the request did not pass the auth middleware.
func claimsFromContext(ctx context.Context) *security.CustomerClaims {
	claims, _ := ctx.Value(claimsContextKey).(*security.CustomerClaims)
	return claims
}

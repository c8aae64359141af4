// utils/payment.go
package utils

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Currency charged for every order
const Currency = "gbp"

// PaymentIntent is the processor handle returned at checkout. The client
// secret completes payment client-side.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// StripeService creates payment intents against the Stripe API
type StripeService struct{}

// NewStripeService sets the API key from the given secret
func NewStripeService(secret string) *StripeService {
	stripe.Key = secret
	return &StripeService{}
}

// CreatePaymentIntent requests a payment intent for the given amount in the
// smallest currency unit
func (s *StripeService) CreatePaymentIntent(ctx context.Context, amount int64) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(Currency),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

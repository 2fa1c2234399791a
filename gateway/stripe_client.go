package gateway

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// StripeGateway implements PaymentGateway against the Stripe API
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a Stripe-backed gateway client
func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("missing Stripe secret key")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}, nil
}

// CreateIntent creates a manual-capture destination charge with the platform
// fee retained
func (g *StripeGateway) CreateIntent(params CreateIntentParams) (*Intent, error) {
	p := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(params.Amount),
		Currency:             stripe.String(params.Currency),
		ApplicationFeeAmount: stripe.Int64(params.ApplicationFeeAmount),
		CaptureMethod:        stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(params.DestinationAccountID),
		},
	}
	for key, value := range params.Metadata {
		p.AddMetadata(key, value)
	}

	pi, err := g.api.PaymentIntents.New(p)
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

// GetIntent retrieves an intent's current state
func (g *StripeGateway) GetIntent(intentID string) (*Intent, error) {
	pi, err := g.api.PaymentIntents.Get(intentID, nil)
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

// CaptureIntent captures an authorized intent
func (g *StripeGateway) CaptureIntent(intentID string) (*Intent, error) {
	pi, err := g.api.PaymentIntents.Capture(intentID, &stripe.PaymentIntentCaptureParams{})
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

// CreateTransfer moves the provider's share to their connected account
func (g *StripeGateway) CreateTransfer(params CreateTransferParams) (*Transfer, error) {
	p := &stripe.TransferParams{
		Amount:      stripe.Int64(params.Amount),
		Currency:    stripe.String(params.Currency),
		Destination: stripe.String(params.DestinationAccountID),
	}
	for key, value := range params.Metadata {
		p.AddMetadata(key, value)
	}

	tr, err := g.api.Transfers.New(p)
	if err != nil {
		return nil, err
	}
	return &Transfer{
		ID:       tr.ID,
		Amount:   tr.Amount,
		Currency: string(tr.Currency),
	}, nil
}

func intentFromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}

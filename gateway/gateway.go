// Package gateway wraps the hosted payments API. Services depend on the
// PaymentGateway interface so tests can substitute a fake.
package gateway

// Payment intent statuses as reported by the gateway
const (
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusRequiresConfirmation  = "requires_confirmation"
	IntentStatusRequiresCapture       = "requires_capture"
	IntentStatusProcessing            = "processing"
	IntentStatusSucceeded             = "succeeded"
	IntentStatusCanceled              = "canceled"
)

// Intent is the slice of a gateway payment intent this service cares about
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
}

// Transfer is a completed destination transfer to a provider sub-account
type Transfer struct {
	ID       string
	Amount   int64
	Currency string
}

// CreateIntentParams describes a new destination charge
type CreateIntentParams struct {
	Amount               int64
	Currency             string
	ApplicationFeeAmount int64
	DestinationAccountID string
	Metadata             map[string]string
}

// CreateTransferParams describes a payout transfer to a provider
type CreateTransferParams struct {
	Amount               int64
	Currency             string
	DestinationAccountID string
	Metadata             map[string]string
}

// PaymentGateway is the payments API surface used by the booking lifecycle
type PaymentGateway interface {
	CreateIntent(params CreateIntentParams) (*Intent, error)
	GetIntent(intentID string) (*Intent, error)
	CaptureIntent(intentID string) (*Intent, error)
	CreateTransfer(params CreateTransferParams) (*Transfer, error)
}

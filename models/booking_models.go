// models/booking_models.go
package models

import "time"

// Booking represents one agreement between a booker and a service provider
type Booking struct {
	ID                    string     `json:"id" db:"id"`
	BookerID              string     `json:"booker_id" db:"booker_id"`
	ProviderID            string     `json:"provider_id" db:"provider_id"`
	Status                string     `json:"status" db:"status"`
	Currency              string     `json:"currency" db:"currency"`
	TotalAmount           float64    `json:"total_amount" db:"total_amount"`
	PlatformFee           float64    `json:"platform_fee" db:"platform_fee"`
	ProviderPayout        float64    `json:"provider_payout" db:"provider_payout"`
	StripePaymentIntentID string     `json:"stripe_payment_intent_id,omitempty" db:"stripe_payment_intent_id"`
	ScheduledStart        *time.Time `json:"scheduled_start,omitempty" db:"scheduled_start"`
	ScheduledEnd          *time.Time `json:"scheduled_end,omitempty" db:"scheduled_end"`
	PaidAt                *time.Time `json:"paid_at,omitempty" db:"paid_at"`
	AutoReleaseAt         *time.Time `json:"auto_release_at,omitempty" db:"auto_release_at"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// IsTerminal reports whether the booking can no longer change state
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case "completed", "cancelled", "disputed":
		return true
	}
	return false
}

// BookingDetail is a booking hydrated with provider/offering/venue info for
// response payloads
type BookingDetail struct {
	Booking
	ProviderName  string `json:"provider_name,omitempty"`
	OfferingTitle string `json:"offering_title,omitempty"`
	VenueName     string `json:"venue_name,omitempty"`
}

// BookingActivity is one audit row in the booking activity log
type BookingActivity struct {
	ID           string    `json:"id" db:"id"`
	BookingID    string    `json:"booking_id" db:"booking_id"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	Metadata     string    `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LedgerEntry is an immutable record of one monetary fact tied to a booking.
// Entries are append-only; they are never updated or deleted.
type LedgerEntry struct {
	ID              string    `json:"id" db:"id"`
	BookingID       string    `json:"booking_id" db:"booking_id"`
	EntryType       string    `json:"entry_type" db:"entry_type"`
	Amount          float64   `json:"amount" db:"amount"`
	Currency        string    `json:"currency" db:"currency"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	Metadata        string    `json:"metadata,omitempty" db:"metadata"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ConnectAccount is a provider's sub-account with the payment gateway
type ConnectAccount struct {
	ProviderID       string `json:"provider_id" db:"provider_id"`
	StripeAccountID  string `json:"stripe_account_id" db:"stripe_account_id"`
	ChargesEnabled   bool   `json:"charges_enabled" db:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled" db:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted" db:"details_submitted"`
}

// Ready reports whether the account may receive destination charges
func (a *ConnectAccount) Ready() bool {
	return a.ChargesEnabled && a.PayoutsEnabled && a.DetailsSubmitted
}

// ConfirmPaymentRequest request model
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// PaymentIntentResponse response model
type PaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Status          string `json:"status"`
}

// ConfirmPaymentResponse response model
type ConfirmPaymentResponse struct {
	Booking             *BookingDetail `json:"booking"`
	PaymentIntentStatus string         `json:"paymentIntentStatus"`
}

package models

import (
	"time"
)

// OpportunityPost is a gig listing; completion operates on a confirmed post
type OpportunityPost struct {
	ID                 string    `json:"id" db:"id"`
	RequesterID        string    `json:"requester_id" db:"requester_id"`
	SelectedProviderID string    `json:"selected_provider_id" db:"selected_provider_id"`
	Status             string    `json:"status" db:"status"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// OpportunityProject is the priced engagement linked to an opportunity post
type OpportunityProject struct {
	ID                  string     `json:"id" db:"id"`
	PostID              string     `json:"post_id" db:"post_id"`
	RequesterID         string     `json:"requester_id" db:"requester_id"`
	ProviderID          string     `json:"provider_id" db:"provider_id"`
	Currency            string     `json:"currency" db:"currency"`
	CreatorPayoutAmount float64    `json:"creator_payout_amount" db:"creator_payout_amount"`
	PaymentIntentID     string     `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	TransferID          string     `json:"transfer_id,omitempty" db:"transfer_id"`
	Status              string     `json:"status" db:"status"`
	CompletedAt         *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// ReleasedPayout is the payload returned after a successful gig completion
type ReleasedPayout struct {
	ReleasedAmount float64 `json:"released_amount"`
	Currency       string  `json:"currency"`
}

// CompleteGigResponse response model
type CompleteGigResponse struct {
	Success bool           `json:"success"`
	Data    ReleasedPayout `json:"data"`
}

package models

import (
	"time"
)

// Wallet is a per-user, per-currency running balance
type Wallet struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Currency  string    `json:"currency" db:"currency"`
	Balance   float64   `json:"balance" db:"balance"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WalletTransaction records a signed delta against a wallet with a reference
// back to the originating booking or project
type WalletTransaction struct {
	ID          string    `json:"id" db:"id"`
	WalletID    string    `json:"wallet_id" db:"wallet_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Amount      float64   `json:"amount" db:"amount"`
	Currency    string    `json:"currency" db:"currency"`
	Type        string    `json:"type" db:"type"`
	Description string    `json:"description" db:"description"`
	ReferenceID string    `json:"reference_id,omitempty" db:"reference_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

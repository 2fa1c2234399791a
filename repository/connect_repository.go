package repository

import (
	"database/sql"

	"github.com/soundbridge/soundbridge-backend/models"
)

// ConnectRepository handles provider payment sub-account lookups
type ConnectRepository struct {
	DB *sql.DB
}

// NewConnectRepository creates a new ConnectRepository
func NewConnectRepository(db *sql.DB) *ConnectRepository {
	return &ConnectRepository{DB: db}
}

// GetByProviderID retrieves a provider's connect account
func (r *ConnectRepository) GetByProviderID(providerID string) (*models.ConnectAccount, error) {
	var account models.ConnectAccount
	err := r.DB.QueryRow(
		`SELECT provider_id, stripe_account_id, charges_enabled, payouts_enabled, details_submitted
		 FROM provider_connect_accounts WHERE provider_id = $1`,
		providerID,
	).Scan(&account.ProviderID, &account.StripeAccountID, &account.ChargesEnabled,
		&account.PayoutsEnabled, &account.DetailsSubmitted)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

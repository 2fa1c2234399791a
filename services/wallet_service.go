package services

import (
	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// WalletReader reads wallet balances and history
type WalletReader interface {
	GetWalletsByUser(userID string) ([]models.Wallet, error)
	GetTransactionsByUser(userID, currency string) ([]models.WalletTransaction, error)
}

// WalletService exposes a user's internal balances and transaction history
type WalletService struct {
	wallets WalletReader
}

// NewWalletService creates a new wallet service
func NewWalletService(wallets WalletReader) *WalletService {
	return &WalletService{wallets: wallets}
}

// GetWallets returns all of a user's wallets
func (s *WalletService) GetWallets(userID string) ([]models.Wallet, error) {
	wallets, err := s.wallets.GetWalletsByUser(userID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if wallets == nil {
		wallets = []models.Wallet{}
	}
	return wallets, nil
}

// GetTransactions returns a user's wallet history, optionally filtered by
// currency
func (s *WalletService) GetTransactions(userID, currency string) ([]models.WalletTransaction, error) {
	if currency != "" {
		if err := utils.ValidateCurrency(currency); err != nil {
			return nil, err
		}
	}
	transactions, err := s.wallets.GetTransactionsByUser(userID, currency)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if transactions == nil {
		transactions = []models.WalletTransaction{}
	}
	return transactions, nil
}

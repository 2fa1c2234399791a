package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// WalletRepository handles per-user, per-currency wallet balances
type WalletRepository struct {
	DB *sql.DB
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{DB: db}
}

// Credit resolves (or creates) the wallet for (userID, currency), inserts a
// transaction row and applies the delta to the balance in one transaction.
// The balance write is an atomic increment so concurrent payouts cannot lose
// an update.
func (r *WalletRepository) Credit(userID, currency string, amount float64, txType, description, referenceID string) (*models.Wallet, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var wallet models.Wallet
	err = tx.QueryRow(
		`SELECT id, user_id, currency, balance, created_at, updated_at
		 FROM user_wallets WHERE user_id = $1 AND currency = $2`,
		userID, currency,
	).Scan(&wallet.ID, &wallet.UserID, &wallet.Currency, &wallet.Balance,
		&wallet.CreatedAt, &wallet.UpdatedAt)

	if err == sql.ErrNoRows {
		wallet = models.Wallet{
			ID:        utils.GenerateID(),
			UserID:    userID,
			Currency:  currency,
			Balance:   0,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		_, err = tx.Exec(
			`INSERT INTO user_wallets (id, user_id, currency, balance, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			wallet.ID, wallet.UserID, wallet.Currency, wallet.Balance,
			wallet.CreatedAt, wallet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create wallet: %v", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	_, err = tx.Exec(
		`INSERT INTO wallet_transactions
		 (id, wallet_id, user_id, amount, currency, type, description, reference_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		utils.GenerateID(), wallet.ID, userID, amount, currency, txType,
		description, referenceID, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert wallet transaction: %v", err)
	}

	err = tx.QueryRow(
		`UPDATE user_wallets SET balance = balance + $1, updated_at = NOW()
		 WHERE id = $2 RETURNING balance`,
		amount, wallet.ID,
	).Scan(&wallet.Balance)
	if err != nil {
		return nil, fmt.Errorf("failed to update wallet balance: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit wallet credit: %v", err)
	}

	return &wallet, nil
}

// GetWalletsByUser retrieves all wallets for a user
func (r *WalletRepository) GetWalletsByUser(userID string) ([]models.Wallet, error) {
	rows, err := r.DB.Query(
		`SELECT id, user_id, currency, balance, created_at, updated_at
		 FROM user_wallets WHERE user_id = $1 ORDER BY currency ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallets: %v", err)
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		var wallet models.Wallet
		err = rows.Scan(&wallet.ID, &wallet.UserID, &wallet.Currency,
			&wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %v", err)
		}
		wallets = append(wallets, wallet)
	}

	return wallets, nil
}

// GetTransactionsByUser retrieves a user's wallet transactions, optionally
// filtered by currency
func (r *WalletRepository) GetTransactionsByUser(userID, currency string) ([]models.WalletTransaction, error) {
	query := `SELECT id, wallet_id, user_id, amount, currency, type, description, reference_id, created_at
	          FROM wallet_transactions WHERE user_id = $1`
	args := []interface{}{userID}
	if currency != "" {
		query += " AND currency = $2"
		args = append(args, currency)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transactions: %v", err)
	}
	defer rows.Close()

	var transactions []models.WalletTransaction
	for rows.Next() {
		var txn models.WalletTransaction
		var referenceID sql.NullString
		err = rows.Scan(&txn.ID, &txn.WalletID, &txn.UserID, &txn.Amount,
			&txn.Currency, &txn.Type, &txn.Description, &referenceID, &txn.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %v", err)
		}
		if referenceID.Valid {
			txn.ReferenceID = referenceID.String
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

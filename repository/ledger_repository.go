package repository

import (
	"database/sql"
	"fmt"

	"github.com/soundbridge/soundbridge-backend/models"
)

// LedgerRepository handles the append-only booking ledger. Entries are never
// updated or deleted.
type LedgerRepository struct {
	DB *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// AppendEntries inserts a batch of ledger entries in one transaction
func (r *LedgerRepository) AppendEntries(entries []*models.LedgerEntry) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, entry := range entries {
		_, err = tx.Exec(
			`INSERT INTO booking_ledger
			 (id, booking_id, entry_type, amount, currency, payment_intent_id, metadata, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			entry.ID, entry.BookingID, entry.EntryType, entry.Amount,
			entry.Currency, entry.PaymentIntentID, entry.Metadata, entry.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ledger entry: %v", err)
		}
	}

	return tx.Commit()
}

// ListEntries retrieves all ledger entries for a booking
func (r *LedgerRepository) ListEntries(bookingID string) ([]*models.LedgerEntry, error) {
	rows, err := r.DB.Query(
		`SELECT id, booking_id, entry_type, amount, currency, payment_intent_id, metadata, created_at
		 FROM booking_ledger WHERE booking_id = $1 ORDER BY created_at ASC`,
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %v", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var intentID, metadata sql.NullString

		err = rows.Scan(
			&entry.ID, &entry.BookingID, &entry.EntryType, &entry.Amount,
			&entry.Currency, &intentID, &metadata, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %v", err)
		}

		if intentID.Valid {
			entry.PaymentIntentID = intentID.String
		}
		if metadata.Valid {
			entry.Metadata = metadata.String
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}

// ListAllEntries retrieves every ledger entry, newest first, for the admin export
func (r *LedgerRepository) ListAllEntries() ([]*models.LedgerEntry, error) {
	rows, err := r.DB.Query(
		`SELECT id, booking_id, entry_type, amount, currency, payment_intent_id, metadata, created_at
		 FROM booking_ledger ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %v", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var intentID, metadata sql.NullString

		err = rows.Scan(
			&entry.ID, &entry.BookingID, &entry.EntryType, &entry.Amount,
			&entry.Currency, &intentID, &metadata, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %v", err)
		}

		if intentID.Valid {
			entry.PaymentIntentID = intentID.String
		}
		if metadata.Valid {
			entry.Metadata = metadata.String
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}

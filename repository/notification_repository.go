package repository

import (
	"database/sql"
	"fmt"

	"github.com/soundbridge/soundbridge-backend/models"
)

// NotificationRepository handles notification row inserts
type NotificationRepository struct {
	DB *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// Insert stores one notification row
func (r *NotificationRepository) Insert(n *models.Notification) error {
	_, err := r.DB.Exec(
		`INSERT INTO notifications (id, user_id, type, title, body, reference_id, action_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.Type, n.Title, n.Body, n.ReferenceID, n.ActionURL, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %v", err)
	}
	return nil
}
